package get_accounts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tkardach/SwimClubServer/internal/service/accounts"
	"github.com/tkardach/SwimClubServer/pkg/logger"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) List(ctx context.Context) ([]accounts.AccountResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounts.AccountResponse), args.Error(1)
}

func TestHandle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("List", mock.Anything).Return([]accounts.AccountResponse{{ID: "101PM", LastName: "Smith", EligibleToReserve: true}}, nil)

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"lastName":"Smith"`)
	})

	t.Run("roster failure", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("List", mock.Anything).Return(nil, errors.Join(accounts.ErrInternal, errors.New("sheets quota")))

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "sheets quota")
	})
}
