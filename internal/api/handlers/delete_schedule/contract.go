package delete_schedule

import (
	"context"

	"github.com/tkardach/SwimClubServer/internal/service/schedules/models"
)

type ScheduleService interface {
	Delete(ctx context.Context, id int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
