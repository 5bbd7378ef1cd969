package create_reservation

import (
	"context"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetCurrentForDay(ctx context.Context, day int, date time.Time) (*domain.Schedule, error)
}

// CalendarClient интерфейс клиента календаря бронирований
type CalendarClient interface {
	GetEventsForDateAndTime(ctx context.Context, startDate, endDate time.Time, startTime, endTime types.NumericTime) ([]domain.Event, error)
	GetEventsForRange(ctx context.Context, from, to time.Time) ([]domain.Event, error)
	PostEvent(ctx context.Context, event domain.Event) (*domain.Event, error)
	PostEvents(ctx context.Context, events []domain.Event) ([]domain.Event, error)
}

// RosterClient интерфейс реестра участников
type RosterClient interface {
	FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error)
	GetAllPaidMembersDict(ctx context.Context, lite bool) (map[string]domain.Member, error)
}

// SlotLocker сериализует решения по одному таймслоту
type SlotLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Publisher публикация событий бронирования
type Publisher interface {
	Publish(ctx context.Context, key string, message interface{}) error
}

// Metrics счетчик решений по бронированию
type Metrics interface {
	ObserveDecision(outcome string)
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
