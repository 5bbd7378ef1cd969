package create_schedule

import (
	"errors"
	"net/http"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/service/schedules"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgAlreadyExists      = "a schedule for this day and start date already exists"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /schedules - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleAlreadyExists):
			h.logger.Warn("POST /schedules - Duplicate: day=%d, startDate=%s", req.Day, req.StartDate)
			handlers.RespondBadRequest(w, msgAlreadyExists)
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /schedules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Reason(err))
		default:
			h.logger.Error("POST /schedules - Failed to create schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules - Schedule created: id=%d, day=%d", result.ID, result.Day)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
