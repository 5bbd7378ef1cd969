package update_schedule

import (
	"time"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
	"github.com/tkardach/SwimClubServer/internal/service/schedules/models"
)

// TimeslotRequest таймслот в теле запроса
type TimeslotRequest struct {
	Type         string `json:"type" validate:"required"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	MaxOccupants int    `json:"maxOccupants" validate:"min=1"`
}

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Day       int               `json:"day" validate:"min=0,max=6"`
	StartDate string            `json:"startDate" validate:"required"` // "2024-06-01" или RFC3339
	Timeslots []TimeslotRequest `json:"timeslots" validate:"required,min=1,dive"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest() (*models.ScheduleRequest, error) {
	startDate, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		// Старые клиенты присылают дату с временем
		t, rfcErr := time.Parse(time.RFC3339, r.StartDate)
		if rfcErr != nil {
			return nil, err
		}
		startDate = t
	}

	slots := make([]models.Timeslot, 0, len(r.Timeslots))
	for _, s := range r.Timeslots {
		slots = append(slots, models.Timeslot{
			Type:         s.Type,
			Start:        s.Start,
			End:          s.End,
			MaxOccupants: s.MaxOccupants,
		})
	}

	return &models.ScheduleRequest{
		Day:       r.Day,
		StartDate: startDate,
		Timeslots: slots,
	}, nil
}
