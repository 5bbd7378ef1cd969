package broker

import "errors"

var (
	// ErrConnection возвращается, когда не удалось подключиться к RabbitMQ
	ErrConnection = errors.New("broker: connection failed")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("broker: publish failed")

	// ErrConsume возвращается при ошибке подписки на очередь
	ErrConsume = errors.New("broker: consume failed")
)
