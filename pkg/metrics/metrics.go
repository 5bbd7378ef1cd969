package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	ReservationDecisions *prometheus.CounterVec

	ExternalCallDuration *prometheus.HistogramVec
	ExternalCallErrors   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUse: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		ReservationDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_decisions_total",
			Help:        "Reservation admission decisions by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),

		ExternalCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "external_call_duration_seconds",
			Help:        "Latency of calls to external services (calendar, roster, mail)",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"target", "operation"}),

		ExternalCallErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "external_call_errors_total",
			Help:        "Failed calls to external services",
			ConstLabels: labels,
		}, []string{"target", "operation"}),
	}
}

// ObserveExternalCall записывает длительность и результат внешнего вызова
// target - внешний сервис (calendar, roster, mailersend); метка service занята ConstLabels
// Безопасно вызывать на nil (метрики выключены)
func (m *Metrics) ObserveExternalCall(target, operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.ExternalCallDuration.WithLabelValues(target, operation).Observe(time.Since(started).Seconds())
	if err != nil {
		m.ExternalCallErrors.WithLabelValues(target, operation).Inc()
	}
}

// ObserveDecision увеличивает счетчик решений по бронированию
func (m *Metrics) ObserveDecision(outcome string) {
	if m == nil {
		return
	}
	m.ReservationDecisions.WithLabelValues(outcome).Inc()
}
