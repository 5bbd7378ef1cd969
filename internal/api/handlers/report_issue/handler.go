package report_issue

import (
	"context"
	"errors"
	"net/http"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/api/middleware"
	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/internal/service/issues"
)

const (
	msgDescriptionRequired = "Need a description to report an issue."
	msgSendFailed          = "Failed to send email, try again later."
	msgSent                = "Email sent!"
)

type IssueService interface {
	Report(ctx context.Context, req *issues.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ReportIssueRequest HTTP request model
type ReportIssueRequest struct {
	Description string `json:"description" validate:"required"`
}

// ReportIssueResponse HTTP response model
type ReportIssueResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service IssueService
	logger  Logger
}

func NewHandler(service IssueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/issues
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReportIssueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || handlers.Validate(&req) != nil {
		handlers.RespondBadRequest(w, msgDescriptionRequired)
		return
	}

	reporter := ""
	if caller := middleware.CallerFromContext(r.Context()); caller != nil {
		reporter = domain.NormalizeEmail(caller.Email)
	}

	err := h.service.Report(r.Context(), &issues.Request{Description: req.Description, Reporter: reporter})
	if err != nil {
		switch {
		case errors.Is(err, issues.ErrInvalidInput):
			h.logger.Warn("POST /issues - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Reason(err))
		default:
			h.logger.Error("POST /issues - Failed to send issue: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgSendFailed)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ReportIssueResponse{Message: msgSent})
}
