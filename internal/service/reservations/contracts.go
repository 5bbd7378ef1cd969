package reservations

import (
	"context"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// CalendarClient интерфейс клиента календаря бронирований
type CalendarClient interface {
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	GetEventsForMember(ctx context.Context, certificateNumber string, from time.Time) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// RosterClient интерфейс реестра участников
type RosterClient interface {
	FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error)
}

// Publisher публикация событий бронирования
type Publisher interface {
	Publish(ctx context.Context, key string, message interface{}) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
