package get_schedules

import (
	"context"
	"time"

	"github.com/tkardach/SwimClubServer/internal/service/schedules/models"
)

type ScheduleService interface {
	List(ctx context.Context) (*models.ScheduleListResponse, error)
	GetCurrent(ctx context.Context, date time.Time) (*models.ScheduleListResponse, error)
	GetForDate(ctx context.Context, date time.Time) (*models.ScheduleResponse, error)
	GetPeriod(ctx context.Context, date time.Time) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
