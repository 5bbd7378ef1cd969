package mailer

import "errors"

var (
	// ErrInvalidMessage возвращается, когда у письма нет получателей или темы
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSendFailed возвращается при ошибке отправки
	ErrSendFailed = errors.New("mailer: failed to send email")

	// ErrDisabled возвращается, когда отправка почты выключена в конфигурации
	ErrDisabled = errors.New("mailer: email delivery is disabled")
)
