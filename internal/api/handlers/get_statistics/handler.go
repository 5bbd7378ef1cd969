package get_statistics

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	getStatistics "github.com/tkardach/SwimClubServer/internal/usecase/get_statistics"
)

type Handler struct {
	useCase GetStatisticsUseCase
	logger  Logger
}

func NewHandler(useCase GetStatisticsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/statistics/week/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /statistics/week/{date} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getStatistics.Request{Date: date})
	if err != nil {
		if errors.Is(err, getStatistics.ErrInvalidInput) {
			handlers.RespondBadRequest(w, handlers.Reason(err))
			return
		}
		h.logger.Error("GET /statistics/week/{date} - Failed to get statistics: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
