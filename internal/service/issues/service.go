package issues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/internal/integrations/mailer"
)

// Subject тема письма с проблемой
const Subject = "Swim Club Issue Report"

var (
	// ErrInvalidInput возвращается при пустом или слишком длинном описании
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSendFailed возвращается, когда письмо не удалось отправить
	ErrSendFailed = errors.New("failed to send email")
)

// Mailer интерфейс отправки писем
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Request сообщение о проблеме
type Request struct {
	Description string
	Reporter    string // Email отправителя, если есть сессия
}

// Service пересылает сообщения о проблемах на почту клуба
type Service struct {
	mailer    Mailer
	recipient string
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(sender Mailer, recipient string, logger Logger) *Service {
	return &Service{mailer: sender, recipient: recipient, logger: logger}
}

// Report отправляет описание проблемы на адрес issuesEmail
func (s *Service) Report(ctx context.Context, req *Request) error {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if len(description) > domain.MaxIssueLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxIssueLength)
	}

	text := description
	if req.Reporter != "" {
		text = fmt.Sprintf("Reported by %s\n\n%s", req.Reporter, description)
	}

	err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{s.recipient},
		Subject: Subject,
		Text:    text,
	})
	if err != nil {
		s.logger.Error("Report: failed to send issue email: %v", err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	s.logger.Info("Report: issue sent to %s", s.recipient)
	return nil
}
