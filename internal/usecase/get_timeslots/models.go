package get_timeslots

import (
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

// Request модель запроса таймслотов на дату
type Request struct {
	Date time.Time // Дата (время суток игнорируется)
}

// Response модель ответа со списком таймслотов
type Response struct {
	Date      time.Time      // Дата в часовом поясе клуба
	Timeslots []TimeslotView // Таймслоты действующего расписания
}

// TimeslotView таймслот с текущей занятостью
type TimeslotView struct {
	Type         domain.TimeslotType
	Start        types.NumericTime
	End          types.NumericTime
	MaxOccupants int
	Occupied     int  // Количество событий с точным совпадением начала и конца
	Vacant       bool // Можно ли забронировать еще одно место
}
