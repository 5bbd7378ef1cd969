package create_reservation

import (
	"fmt"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.Type.IsReservable() {
		return fmt.Errorf("%w: type must be one of %v", ErrInvalidInput, domain.ReservableTypes)
	}

	if err := req.Start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start: %v", ErrInvalidInput, err)
	}

	if err := req.End.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end: %v", ErrInvalidInput, err)
	}

	if req.End <= req.Start {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	if req.NumberSwimmers < 0 {
		return fmt.Errorf("%w: numberSwimmers must not be negative", ErrInvalidInput)
	}

	return nil
}

// resolveEmail определяет, для кого создается бронирование
// Сессия бронирует за себя; memberEmail принимается без сессии или от администратора
func resolveEmail(req *Request) (string, error) {
	requested := domain.NormalizeEmail(req.MemberEmail)

	if req.Caller == nil {
		if requested == "" {
			return "", fmt.Errorf("%w: memberEmail is required", ErrInvalidInput)
		}
		return requested, nil
	}

	own := domain.NormalizeEmail(req.Caller.Email)
	if requested == "" || requested == own {
		if own == "" {
			return "", fmt.Errorf("%w: session has no email", ErrInvalidInput)
		}
		return own, nil
	}

	if req.Caller.IsAdmin {
		return requested, nil
	}

	return "", fmt.Errorf("%w: members can only reserve for themselves", ErrInvalidInput)
}

// extraReservations количество дополнительных мест сверх одного
// Семейное бронирование всегда занимает одно место
func extraReservations(t domain.TimeslotType, swimmers int) int {
	if t == domain.TimeslotFamily || swimmers <= 1 {
		return 0
	}
	return swimmers - 1
}

// findBackToBack возвращает событие участника, примыкающее к [start, end]
func findBackToBack(events []domain.Event, req *Request) (domain.Event, bool) {
	for _, e := range events {
		if e.AllDay {
			continue
		}
		if e.EndTime() == req.Start || e.StartTime() == req.End {
			return e, true
		}
	}
	return domain.Event{}, false
}
