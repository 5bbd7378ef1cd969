package delete_reservation

import (
	"context"

	"github.com/tkardach/SwimClubServer/internal/service/reservations/models"
)

type ReservationService interface {
	Delete(ctx context.Context, id string, caller *models.Caller) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
