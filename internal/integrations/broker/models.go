package broker

import "time"

// Ключи маршрутизации событий бронирования
const (
	RoutingReservationCreated = "reservation.created"
	RoutingReservationDeleted = "reservation.deleted"
)

// ReservationMessage событие о создании или удалении бронирования
type ReservationMessage struct {
	MessageID         string    `json:"messageId"`
	Kind              string    `json:"kind"`
	EventIDs          []string  `json:"eventIds"`
	MemberEmail       string    `json:"memberEmail,omitempty"`
	CertificateNumber string    `json:"certificateNumber,omitempty"`
	LastName          string    `json:"lastName,omitempty"`
	ReservationType   string    `json:"type,omitempty"`
	Date              string    `json:"date,omitempty"`
	Start             int       `json:"start,omitempty"`
	End               int       `json:"end,omitempty"`
	NumberSwimmers    int       `json:"numberSwimmers,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}
