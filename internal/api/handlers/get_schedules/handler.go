package get_schedules

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/service/schedules"
)

const msgNotFound = "no schedule is in effect on this date"

// Handler чтение расписаний (публичные маршруты)
type Handler struct {
	service ScheduleService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// HandleList GET /api/v1/schedules
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /schedules - Failed to list schedules: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCurrent GET /api/v1/schedules/current
func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetCurrent(r.Context(), h.now())
	if err != nil {
		h.logger.Error("GET /schedules/current - Failed to get current schedules: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleForDate GET /api/v1/schedules/date/{date}
func (h *Handler) HandleForDate(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /schedules/date/{date} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.GetForDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, schedules.ErrScheduleNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /schedules/date/{date} - Failed to get schedule: date=%s, error=%v", mux.Vars(r)["date"], err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePeriod GET /api/v1/schedules/period/{date}
func (h *Handler) HandlePeriod(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /schedules/period/{date} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.GetPeriod(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /schedules/period/{date} - Failed to get schedules: date=%s, error=%v", mux.Vars(r)["date"], err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
