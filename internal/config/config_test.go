package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = "secret"

[google]
calendar_id = "club@group.calendar.google.com"
spreadsheet_id = "sheet-1"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "America/Los_Angeles", cfg.Google.TimeZone)
	assert.Equal(t, "*/5 * * * *", cfg.Watchdog.Schedule)

	assert.Equal(t, 3, cfg.Reservations.FamilyMaxPerWeek)
	assert.Equal(t, 1, cfg.Reservations.FamilyMaxPerDay)
	assert.Equal(t, 4, cfg.Reservations.LapMaxPerWeek)
	assert.Equal(t, 2, cfg.Reservations.LapMaxPerDay)
	assert.Equal(t, 4, cfg.Reservations.CutoffWeekday)
	assert.Equal(t, 18, cfg.Reservations.CutoffHour)
}

func TestLoad_ExplicitZeroCutoff(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = "secret"

[google]
calendar_id = "cal"
spreadsheet_id = "sheet"

[reservations]
cutoff_weekday = 0
cutoff_hour = 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Reservations.CutoffWeekday)
	assert.Equal(t, 0, cfg.Reservations.CutoffHour)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
environment = "development"

[auth]
jwt_secret = "from-file"

[google]
calendar_id = "cal"
spreadsheet_id = "sheet"
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_PORT", "6543")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
[google]
calendar_id = "cal"
spreadsheet_id = "sheet"
`)
	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_BrokerRequiresURL(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = "secret"

[google]
calendar_id = "cal"
spreadsheet_id = "sheet"

[broker]
enabled = true
`)
	t.Setenv("RABBITMQ_URL", "")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBookingPolicy(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = "secret"

[google]
calendar_id = "club@group.calendar.google.com"
spreadsheet_id = "sheet-1"

[reservations]
season_end_month = 9
season_end_day = 15
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	policy, err := cfg.BookingPolicy()
	require.NoError(t, err)

	assert.Equal(t, "America/Los_Angeles", policy.Location.String())
	assert.Equal(t, time.Thursday, policy.CutoffWeekday)
	assert.Equal(t, time.September, policy.SeasonEndMonth)
	assert.Equal(t, 15, policy.SeasonEndDay)
	assert.Equal(t, 3, policy.FamilyMaxPerWeek)

	cfg.Google.TimeZone = "Mars/Olympus_Mons"
	_, err = cfg.BookingPolicy()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
