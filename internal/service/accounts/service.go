package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("service: internal error")

// RosterClient интерфейс реестра участников
type RosterClient interface {
	GetAllAccounts(ctx context.Context) ([]domain.Account, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AccountResponse счет участника
type AccountResponse struct {
	ID                string `json:"id"`
	CertificateNumber string `json:"certificateNumber"`
	LastName          string `json:"lastName"`
	Type              string `json:"type"`
	MoneyOwed         bool   `json:"moneyOwed"`
	EligibleToReserve bool   `json:"eligibleToReserve"`
}

// Service сервис просмотра счетов для администраторов
type Service struct {
	rosterClient RosterClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(rosterClient RosterClient, logger Logger) *Service {
	return &Service{rosterClient: rosterClient, logger: logger}
}

// List возвращает все счета из таблицы клуба
func (s *Service) List(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.rosterClient.GetAllAccounts(ctx)
	if err != nil {
		s.logger.Error("List: roster error: %v", err)
		return nil, fmt.Errorf("%w: List - roster error: %v", ErrInternal, err)
	}

	result := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, AccountResponse{
			ID:                a.ID,
			CertificateNumber: a.CertificateNumber,
			LastName:          a.LastName,
			Type:              a.Type,
			MoneyOwed:         a.MoneyOwed,
			EligibleToReserve: a.EligibleToReserve,
		})
	}

	s.logger.Info("List: returned %d accounts", len(result))
	return result, nil
}
