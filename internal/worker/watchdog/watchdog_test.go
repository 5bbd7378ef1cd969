package watchdog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tkardach/SwimClubServer/internal/integrations/mailer"
	"github.com/tkardach/SwimClubServer/pkg/logger"
)

type MockIPLookup struct {
	mock.Mock
}

func (m *MockIPLookup) GetPublicIP(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func subject(s string) interface{} {
	return mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.Subject == s && len(msg.To) == 1 && msg.To[0] == "ops@example.com"
	})
}

func newWatchdog(lookup IPLookup, m Mailer) *Watchdog {
	return New(lookup, m, "ops@example.com", "*/5 * * * *", time.Second, logger.NewNop())
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("startup then unchanged then changed", func(t *testing.T) {
		lookup := &MockIPLookup{}
		lookup.On("GetPublicIP", mock.Anything).Return("203.0.113.7", nil).Twice()
		lookup.On("GetPublicIP", mock.Anything).Return("203.0.113.9", nil).Once()
		m := &MockMailer{}
		m.On("Send", mock.Anything, subject(SubjectStartup)).Return(nil).Once()
		m.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
			return msg.Subject == SubjectChanged && strings.Contains(msg.Text, "203.0.113.9")
		})).Return(nil).Once()
		w := newWatchdog(lookup, m)

		require.NoError(t, w.Check(ctx))
		assert.Equal(t, "203.0.113.7", w.State().LastIP())

		require.NoError(t, w.Check(ctx))

		require.NoError(t, w.Check(ctx))
		assert.Equal(t, "203.0.113.9", w.State().LastIP())
		assert.False(t, w.State().LastChecked().IsZero())

		m.AssertExpectations(t)
		lookup.AssertExpectations(t)
	})

	t.Run("failed email retried on next check", func(t *testing.T) {
		lookup := &MockIPLookup{}
		lookup.On("GetPublicIP", mock.Anything).Return("203.0.113.7", nil)
		m := &MockMailer{}
		m.On("Send", mock.Anything, subject(SubjectStartup)).Return(errors.New("mail down")).Once()
		m.On("Send", mock.Anything, subject(SubjectStartup)).Return(nil).Once()
		w := newWatchdog(lookup, m)

		assert.Error(t, w.Check(ctx))
		assert.Equal(t, "", w.State().LastIP())

		require.NoError(t, w.Check(ctx))
		assert.Equal(t, "203.0.113.7", w.State().LastIP())
		m.AssertExpectations(t)
	})

	t.Run("lookup failure keeps state", func(t *testing.T) {
		lookup := &MockIPLookup{}
		lookup.On("GetPublicIP", mock.Anything).Return("", errors.New("timeout"))
		m := &MockMailer{}
		w := newWatchdog(lookup, m)

		assert.Error(t, w.Check(ctx))
		assert.Equal(t, "", w.State().LastIP())
		m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestStart(t *testing.T) {
	t.Run("sends startup email immediately", func(t *testing.T) {
		lookup := &MockIPLookup{}
		lookup.On("GetPublicIP", mock.Anything).Return("203.0.113.7", nil)
		m := &MockMailer{}
		m.On("Send", mock.Anything, subject(SubjectStartup)).Return(nil)
		w := newWatchdog(lookup, m)

		require.NoError(t, w.Start(context.Background()))
		defer w.Stop()

		assert.Eventually(t, func() bool {
			return w.State().LastIP() == "203.0.113.7"
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		w := New(&MockIPLookup{}, &MockMailer{}, "ops@example.com", "every five minutes", time.Second, logger.NewNop())
		assert.Error(t, w.Start(context.Background()))
	})
}
