package get_my_reservations

import (
	"errors"
	"net/http"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/api/middleware"
	"github.com/tkardach/SwimClubServer/internal/service/reservations"
	"github.com/tkardach/SwimClubServer/internal/service/reservations/models"
)

const (
	msgNoSession      = "session is required"
	msgMemberNotFound = "no member is registered with this email"
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

// Handle GET /api/v1/reservations/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if caller == nil {
		handlers.RespondBadRequest(w, msgNoSession)
		return
	}

	result, err := h.service.ListForMember(r.Context(), &models.Caller{Email: caller.Email, IsAdmin: caller.IsAdmin})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrMemberNotFound):
			h.logger.Warn("GET /reservations/me - Member not found: email=%s", caller.Email)
			handlers.RespondNotFound(w, msgMemberNotFound)
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.Reason(err))
		default:
			h.logger.Error("GET /reservations/me - Failed to list reservations: email=%s, error=%v", caller.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
