package create_reservation

import (
	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/api/middleware"
	"github.com/tkardach/SwimClubServer/internal/domain"
	createReservation "github.com/tkardach/SwimClubServer/internal/usecase/create_reservation"
	"github.com/tkardach/SwimClubServer/pkg/ptr"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

// CreateReservationRequest HTTP request model
// description принимается для совместимости и не используется: в описание события пишется тип
type CreateReservationRequest struct {
	Date           string   `json:"date" validate:"required"`  // "2024-06-19"
	Start          *int     `json:"start" validate:"required"` // 800; nil - поле не передано
	End            *int     `json:"end" validate:"required"`   // 930
	Type           string   `json:"type" validate:"required"`
	NumberSwimmers int      `json:"numberSwimmers" validate:"min=0"`
	MemberEmail    string   `json:"memberEmail,omitempty" validate:"omitempty,email"`
	Location       string   `json:"location,omitempty"`
	Description    string   `json:"description,omitempty"`
	Attendees      []string `json:"attendees,omitempty" validate:"omitempty,dive,email"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	EventIDs          []string `json:"eventIds"`
	CertificateNumber string   `json:"certificateNumber"`
	LastName          string   `json:"lastName"`
	Type              string   `json:"type"`
	Date              string   `json:"date"`
	Start             int      `json:"start"`
	End               int      `json:"end"`
	NumberSwimmers    int      `json:"numberSwimmers"`
	Location          string   `json:"location,omitempty"`
	Attendees         []string `json:"attendees,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(caller *middleware.Caller) (*createReservation.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		Date:           date,
		Start:          types.NumericTime(ptr.Value(r.Start)),
		End:            types.NumericTime(ptr.Value(r.End)),
		Type:           domain.TimeslotType(r.Type),
		NumberSwimmers: r.NumberSwimmers,
		MemberEmail:    r.MemberEmail,
		Location:       r.Location,
		Attendees:      r.Attendees,
	}
	if caller != nil {
		req.Caller = &createReservation.Caller{Email: caller.Email, IsAdmin: caller.IsAdmin}
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	result := &ReservationResponse{
		EventIDs:          make([]string, 0, len(resp.Events)),
		CertificateNumber: resp.CertificateNumber,
		LastName:          resp.LastName,
		NumberSwimmers:    len(resp.Events),
	}

	for _, e := range resp.Events {
		result.EventIDs = append(result.EventIDs, e.ID)
	}

	if len(resp.Events) > 0 {
		first := resp.Events[0]
		result.Type = string(first.Type())
		result.Date = first.Start.Format(domain.DateFormat)
		result.Start = int(first.StartTime())
		result.End = int(first.EndTime())
		result.Location = first.Location
		result.Attendees = first.Attendees
	}
	return result
}
