package mailer

import (
	"context"
	"time"

	"github.com/mailersend/mailersend-go"
)

// EmailAPI часть клиента MailerSend, отвечающая за отправку писем
type EmailAPI interface {
	NewMessage() *mailersend.Message
	Send(ctx context.Context, message *mailersend.Message) (*mailersend.Response, error)
}

// Metrics наблюдение за внешними вызовами
type Metrics interface {
	ObserveExternalCall(service, operation string, started time.Time, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
