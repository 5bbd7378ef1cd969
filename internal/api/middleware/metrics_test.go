package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/tkardach/SwimClubServer/pkg/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry("swimclub-test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/reservations/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodDelete)

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/api/v1/reservations/{id}", "404")
	assert.Equal(t, float64(2), testutil.ToFloat64(counter))
}
