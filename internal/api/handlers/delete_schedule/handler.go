package delete_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/service/schedules"
)

const (
	msgInvalidScheduleID = "invalid schedule id"
	msgNotFound          = "schedule does not exist"
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

// Handle DELETE /api/v1/schedules/{id}
// Возвращает удаленное расписание
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedules/{id} - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, schedules.ErrScheduleNotFound) {
			h.logger.Warn("DELETE /schedules/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /schedules/{id} - Failed to delete schedule: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /schedules/{id} - Schedule deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
