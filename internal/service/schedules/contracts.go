package schedules

import (
	"context"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetByDayAndStartDate(ctx context.Context, day int, startDate time.Time) (*domain.Schedule, error)
	GetCurrentForDay(ctx context.Context, day int, date time.Time) (*domain.Schedule, error)
	List(ctx context.Context) ([]*domain.Schedule, error)
	GetCurrent(ctx context.Context, date time.Time) ([]*domain.Schedule, error)
	GetPeriod(ctx context.Context, date time.Time) ([]*domain.Schedule, error)
	Update(ctx context.Context, id int64, schedule *domain.Schedule) (*domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
