package get_my_reservations

import (
	"context"

	"github.com/tkardach/SwimClubServer/internal/service/reservations/models"
)

type ReservationService interface {
	ListForMember(ctx context.Context, caller *models.Caller) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
