package delete_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/api/middleware"
	"github.com/tkardach/SwimClubServer/internal/service/reservations"
	"github.com/tkardach/SwimClubServer/internal/service/reservations/models"
)

const (
	msgNoSession    = "session is required"
	msgMissingID    = "reservation id is required"
	msgNotFound     = "reservation not found"
	msgForbidden    = "you can only delete your own reservations"
	msgDeleteFailed = "failed to delete the reservation, try again later"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if caller == nil {
		handlers.RespondBadRequest(w, msgNoSession)
		return
	}

	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	result, err := h.service.Delete(r.Context(), id, &models.Caller{Email: caller.Email, IsAdmin: caller.IsAdmin})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("DELETE /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Reason(err))

		case errors.Is(err, reservations.ErrEventNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("DELETE /reservations/{id} - Access denied: id=%s, email=%s", id, caller.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrDeleteFailed):
			h.logger.Error("DELETE /reservations/{id} - Delete failed: id=%s, error=%v", id, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDeleteFailed)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to delete reservation: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation deleted: id=%s, by=%s", id, caller.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
