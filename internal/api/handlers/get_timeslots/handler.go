package get_timeslots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	getTimeslots "github.com/tkardach/SwimClubServer/internal/usecase/get_timeslots"
)

type Handler struct {
	useCase GetTimeslotsUseCase
	logger  Logger
}

func NewHandler(useCase GetTimeslotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/timeslots/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /timeslots/{date} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getTimeslots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getTimeslots.ErrInvalidInput):
			h.logger.Warn("GET /timeslots/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Reason(err))
		default:
			h.logger.Error("GET /timeslots/{date} - Failed to get timeslots: date=%s, error=%v", mux.Vars(r)["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
