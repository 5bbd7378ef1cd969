package get_statistics

import (
	"github.com/tkardach/SwimClubServer/internal/domain"
	getStatistics "github.com/tkardach/SwimClubServer/internal/usecase/get_statistics"
)

// WeekSummaryResponse HTTP response model
type WeekSummaryResponse struct {
	WeekStart       string `json:"weekStart"`
	MembersReserved int    `json:"membersReserved"`
}

// StatisticsResponse HTTP response model
type StatisticsResponse struct {
	WeekStart       string                `json:"weekStart"`
	WeekEnd         string                `json:"weekEnd"`
	Reservations    map[string]int        `json:"reservations"`
	MembersReserved int                   `json:"membersReserved"`
	PaidMembers     int                   `json:"paidMembers"`
	MembersAtLimit  int                   `json:"membersAtLimit"`
	PreviousWeeks   []WeekSummaryResponse `json:"previousWeeks"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStatistics.Response) *StatisticsResponse {
	history := make([]WeekSummaryResponse, 0, len(resp.PreviousWeeks))
	for _, w := range resp.PreviousWeeks {
		history = append(history, WeekSummaryResponse{
			WeekStart:       w.WeekStart.Format(domain.DateFormat),
			MembersReserved: w.MembersReserved,
		})
	}

	return &StatisticsResponse{
		WeekStart:       resp.WeekStart.Format(domain.DateFormat),
		WeekEnd:         resp.WeekEnd.Format(domain.DateFormat),
		Reservations:    resp.Reservations,
		MembersReserved: resp.MembersReserved,
		PaidMembers:     resp.PaidMembers,
		MembersAtLimit:  resp.MembersAtLimit,
		PreviousWeeks:   history,
	}
}
