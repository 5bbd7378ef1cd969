package get_timeslots

import (
	"context"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	// GetCurrentForDay получает расписание дня недели, действующее на дату
	GetCurrentForDay(ctx context.Context, day int, date time.Time) (*domain.Schedule, error)
}

// CalendarClient интерфейс клиента календаря бронирований
type CalendarClient interface {
	GetEventsForDate(ctx context.Context, date time.Time) ([]domain.Event, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
