package get_statistics

import (
	"context"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// CalendarClient интерфейс клиента календаря бронирований
type CalendarClient interface {
	GetEventsForRange(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

// RosterClient интерфейс реестра участников
type RosterClient interface {
	GetAllPaidMembersDict(ctx context.Context, lite bool) (map[string]domain.Member, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
