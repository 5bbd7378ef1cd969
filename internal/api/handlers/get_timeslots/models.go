package get_timeslots

import (
	getTimeslots "github.com/tkardach/SwimClubServer/internal/usecase/get_timeslots"
)

// TimeslotResponse HTTP response model
type TimeslotResponse struct {
	Type         string `json:"type"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	MaxOccupants int    `json:"maxOccupants"`
	Occupied     int    `json:"occupied"`
	Vacant       bool   `json:"vacant"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeslots.Response) []TimeslotResponse {
	result := make([]TimeslotResponse, 0, len(resp.Timeslots))
	for _, ts := range resp.Timeslots {
		result = append(result, TimeslotResponse{
			Type:         string(ts.Type),
			Start:        int(ts.Start),
			End:          int(ts.End),
			MaxOccupants: ts.MaxOccupants,
			Occupied:     ts.Occupied,
			Vacant:       ts.Vacant,
		})
	}
	return result
}
