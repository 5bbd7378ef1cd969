package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidNumericTime возвращается для значений вне диапазона 0..2359 или с минутами >= 60
var ErrInvalidNumericTime = errors.New("invalid numeric time")

// NumericTime время суток в формате HHMM (1430 = 14:30)
type NumericTime int

// NewNumericTime возвращает время суток t в формате HHMM
func NewNumericTime(t time.Time) NumericTime {
	return NumericTime(t.Hour()*100 + t.Minute())
}

// Validate проверяет, что значение является корректным временем суток
func (n NumericTime) Validate() error {
	if n < 0 || n%100 >= 60 || n/100 >= 24 {
		return fmt.Errorf("%w: %d", ErrInvalidNumericTime, int(n))
	}
	return nil
}

// Hour часы
func (n NumericTime) Hour() int {
	return int(n) / 100
}

// Minute минуты
func (n NumericTime) Minute() int {
	return int(n) % 100
}

// On возвращает момент времени n в дату date (часовой пояс loc)
func (n NumericTime) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, n.Hour(), n.Minute(), 0, 0, loc)
}

// String возвращает время в формате HH:MM
func (n NumericTime) String() string {
	return fmt.Sprintf("%02d:%02d", n.Hour(), n.Minute())
}
