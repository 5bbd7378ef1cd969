package reservations

import "errors"

var (
	// ErrEventNotFound возвращается, когда бронирование не найдено в календаре
	ErrEventNotFound = errors.New("reservation not found")

	// ErrMemberNotFound возвращается, когда email сессии не найден в реестре
	ErrMemberNotFound = errors.New("member not found")

	// ErrAccessDenied возвращается, когда участник удаляет чужое бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDeleteFailed возвращается, когда календарь не смог удалить событие
	ErrDeleteFailed = errors.New("failed to delete reservation")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
