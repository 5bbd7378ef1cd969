package calendar

import (
	"context"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// EventsAPI операции Google Calendar, которые использует клиент
// Нулевой timeMax означает выборку без верхней границы
type EventsAPI interface {
	List(ctx context.Context, timeMin, timeMax time.Time) ([]*gcal.Event, error)
	Get(ctx context.Context, id string) (*gcal.Event, error)
	Insert(ctx context.Context, event *gcal.Event) (*gcal.Event, error)
	Delete(ctx context.Context, id string) error
}

// Metrics наблюдение за внешними вызовами
type Metrics interface {
	ObserveExternalCall(service, operation string, started time.Time, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
