package models

import (
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

// Request модели

// Timeslot таймслот расписания
type Timeslot struct {
	Type         string `json:"type"`
	Start        int    `json:"start"` // HHMM
	End          int    `json:"end"`   // HHMM
	MaxOccupants int    `json:"maxOccupants"`
}

// ScheduleRequest запрос на создание или замену расписания
type ScheduleRequest struct {
	Day       int       // 0 = воскресенье
	StartDate time.Time // Дата вступления в силу
	Timeslots []Timeslot
}

// ToDomainSchedule конвертирует запрос в domain модель; дата начала обрезается до полуночи
func (r *ScheduleRequest) ToDomainSchedule() *domain.Schedule {
	slots := make([]domain.TimeslotDefinition, 0, len(r.Timeslots))
	for _, s := range r.Timeslots {
		slots = append(slots, domain.TimeslotDefinition{
			Type:         domain.TimeslotType(s.Type),
			Start:        types.NumericTime(s.Start),
			End:          types.NumericTime(s.End),
			MaxOccupants: s.MaxOccupants,
		})
	}

	return &domain.Schedule{
		Day:       r.Day,
		StartDate: domain.DateOnly(r.StartDate),
		Timeslots: slots,
	}
}

// Response модели

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID        int64      `json:"id"`
	Day       int        `json:"day"`
	StartDate string     `json:"startDate"`
	Timeslots []Timeslot `json:"timeslots"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	slots := make([]Timeslot, 0, len(s.Timeslots))
	for _, t := range s.Timeslots {
		slots = append(slots, Timeslot{
			Type:         string(t.Type),
			Start:        int(t.Start),
			End:          int(t.End),
			MaxOccupants: t.MaxOccupants,
		})
	}

	return &ScheduleResponse{
		ID:        s.ID,
		Day:       s.Day,
		StartDate: s.StartDate.Format(domain.DateFormat),
		Timeslots: slots,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSchedules конвертирует список domain моделей в DTO
func FromDomainSchedules(schedules []*domain.Schedule) *ScheduleListResponse {
	result := make([]ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		result = append(result, *FromDomainSchedule(s))
	}
	return &ScheduleListResponse{Schedules: result}
}
