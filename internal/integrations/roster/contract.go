package roster

import (
	"context"
	"time"
)

// ValuesReader чтение диапазона ячеек таблицы
type ValuesReader interface {
	GetValues(ctx context.Context, readRange string) ([][]interface{}, error)
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
