package create_schedule

import (
	"context"

	"github.com/tkardach/SwimClubServer/internal/service/schedules/models"
)

type ScheduleService interface {
	Create(ctx context.Context, req *models.ScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
