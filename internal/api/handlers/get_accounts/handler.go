package get_accounts

import (
	"context"
	"net/http"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/service/accounts"
)

type AccountService interface {
	List(ctx context.Context) ([]accounts.AccountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service AccountService
	logger  Logger
}

func NewHandler(service AccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/accounts (только администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /accounts - Failed to list accounts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /accounts - %d accounts", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
