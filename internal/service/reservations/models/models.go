package models

import (
	"github.com/tkardach/SwimClubServer/internal/domain"
)

// Request модели

// Caller аутентифицированный пользователь
type Caller struct {
	Email   string
	IsAdmin bool
}

// Response модели

// ReservationResponse бронирование (событие календаря)
type ReservationResponse struct {
	ID                string   `json:"id"`
	CertificateNumber string   `json:"certificateNumber"`
	Type              string   `json:"type"`
	Date              string   `json:"date"`
	Start             int      `json:"start"` // HHMM
	End               int      `json:"end"`   // HHMM
	Location          string   `json:"location,omitempty"`
	Attendees         []string `json:"attendees,omitempty"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainEvent конвертирует событие календаря в DTO
func FromDomainEvent(e *domain.Event) *ReservationResponse {
	if e == nil {
		return nil
	}

	return &ReservationResponse{
		ID:                e.ID,
		CertificateNumber: e.SubjectCertificate(),
		Type:              string(e.Type()),
		Date:              e.Start.Format(domain.DateFormat),
		Start:             int(e.StartTime()),
		End:               int(e.EndTime()),
		Location:          e.Location,
		Attendees:         e.Attendees,
	}
}

// FromDomainEvents конвертирует список событий в DTO
func FromDomainEvents(events []domain.Event) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(events))
	for i := range events {
		result = append(result, *FromDomainEvent(&events[i]))
	}
	return &ReservationListResponse{Reservations: result}
}
