package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/service/schedules"
)

const (
	msgInvalidScheduleID  = "invalid schedule id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "schedule does not exist"
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

// Handle PUT /api/v1/schedules/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /schedules/{id} - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Update(r.Context(), id, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("PUT /schedules/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, schedules.ErrScheduleAlreadyExists):
			h.logger.Warn("PUT /schedules/{id} - Duplicate: id=%d, day=%d, startDate=%s", id, req.Day, req.StartDate)
			handlers.RespondBadRequest(w, msgAlreadyExists)
		case errors.Is(err, schedules.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.Reason(err))
		default:
			h.logger.Error("PUT /schedules/{id} - Failed to update schedule: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedules/{id} - Schedule updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
