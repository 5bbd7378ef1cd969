package lock

import "errors"

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось взять до истечения ожидания
	ErrLockTimeout = errors.New("lock: timed out waiting for lock")

	// ErrLockFailed возвращается при ошибке хранилища блокировок
	ErrLockFailed = errors.New("lock: lock backend failure")
)
