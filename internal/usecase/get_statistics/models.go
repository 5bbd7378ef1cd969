package get_statistics

import "time"

// HistoryWeeks сколько предыдущих недель включать в ответ
const HistoryWeeks = 4

// Request модель запроса статистики
type Request struct {
	Date time.Time // Любая дата недели
}

// WeekSummary количество участников с семейными бронированиями за неделю
type WeekSummary struct {
	WeekStart       time.Time
	MembersReserved int
}

// Response модель ответа со статистикой недели
type Response struct {
	WeekStart       time.Time
	WeekEnd         time.Time
	Reservations    map[string]int // Семейные бронирования по номеру сертификата
	MembersReserved int
	PaidMembers     int
	MembersAtLimit  int // Достигли недельного лимита
	PreviousWeeks   []WeekSummary
}
