package calendar

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено в календаре
	ErrEventNotFound = errors.New("calendar client: event not found")

	// ErrWriteFailed возвращается, когда пакетная запись не удалась и была откатана
	ErrWriteFailed = errors.New("calendar client: failed to write events")

	// ErrInternal возвращается при ошибках обращения к календарю
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidEvent возвращается, когда событие из календаря не удалось разобрать
	ErrInvalidEvent = errors.New("calendar client: invalid event")
)
