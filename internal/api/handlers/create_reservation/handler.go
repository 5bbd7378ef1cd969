package create_reservation

import (
	"errors"
	"net/http"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/api/middleware"
	createReservation "github.com/tkardach/SwimClubServer/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgCalendarWrite      = "failed to save the reservation, try again later"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /reservations - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	caller := middleware.CallerFromContext(r.Context())
	useCaseReq, err := req.ToUseCaseRequest(caller)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrTimeslotNotFound),
			errors.Is(err, createReservation.ErrMemberNotFound):
			h.logger.Warn("POST /reservations - Not found: %v", err)
			handlers.RespondNotFound(w, handlers.Reason(err))

		case errors.Is(err, createReservation.ErrCalendarWriteFailed):
			h.logger.Error("POST /reservations - Calendar write failed: date=%s, error=%v", req.Date, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCalendarWrite)

		case isRejection(err):
			h.logger.Warn("POST /reservations - Rejected: date=%s, time=%s-%s, type=%s: %v",
				req.Date, useCaseReq.Start, useCaseReq.End, req.Type, err)
			handlers.RespondBadRequest(w, handlers.Reason(err))

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: certificate=%s, events=%d",
		result.CertificateNumber, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// rejections отказы по правилам бронирования и ошибки входных данных (400)
var rejections = []error{
	createReservation.ErrInvalidInput,
	createReservation.ErrSlotBlocked,
	createReservation.ErrSlotFull,
	createReservation.ErrInvalidSwimmerCount,
	createReservation.ErrMultipleMembersFound,
	createReservation.ErrDateInPast,
	createReservation.ErrOutsideBookingWindow,
	createReservation.ErrSeasonEnded,
	createReservation.ErrDuesNotPaid,
	createReservation.ErrWeeklyLimitExceeded,
	createReservation.ErrDailyLimitExceeded,
	createReservation.ErrBackToBackNotAllowed,
}

func isRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
