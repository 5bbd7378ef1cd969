package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/logger"
)

type MockRosterClient struct {
	mock.Mock
}

func (m *MockRosterClient) GetAllAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func TestList(t *testing.T) {
	roster := &MockRosterClient{}
	roster.On("GetAllAccounts", mock.Anything).Return([]domain.Account{
		{ID: "101PM", CertificateNumber: "101", LastName: "Smith", Type: "PM", EligibleToReserve: true},
		{ID: "102BD", CertificateNumber: "102", LastName: "Jones", Type: "BD", MoneyOwed: true},
	}, nil)

	accounts, err := NewService(roster, logger.NewNop()).List(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.True(t, accounts[0].EligibleToReserve)
	assert.True(t, accounts[1].MoneyOwed)
}

func TestList_RosterFailure(t *testing.T) {
	roster := &MockRosterClient{}
	roster.On("GetAllAccounts", mock.Anything).Return(nil, errors.New("403"))

	_, err := NewService(roster, logger.NewNop()).List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
