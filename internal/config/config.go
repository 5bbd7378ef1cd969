package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// ErrInvalidConfig возвращается при отсутствии обязательных параметров
var ErrInvalidConfig = errors.New("config: invalid config")

const EnvProduction = "production"

// Config конфигурация сервиса
type Config struct {
	Environment  string             `toml:"environment"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Auth         AuthConfig         `toml:"auth"`
	Google       GoogleConfig       `toml:"google"`
	Redis        RedisConfig        `toml:"redis"`
	Broker       BrokerConfig       `toml:"broker"`
	Mailer       MailerConfig       `toml:"mailer"`
	Watchdog     WatchdogConfig     `toml:"watchdog"`
	Reservations ReservationsConfig `toml:"reservations"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения к postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type GoogleConfig struct {
	CredentialsFile string `toml:"credentials_file"`
	CalendarID      string `toml:"calendar_id"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	TimeZone        string `toml:"time_zone"`
	Timeout         int    `toml:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  int    `toml:"lock_ttl"`  // секунды
	LockWait int    `toml:"lock_wait"` // секунды
}

type BrokerConfig struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	Exchange    string `toml:"exchange"`
	NotifyQueue string `toml:"notify_queue"`
}

type MailerConfig struct {
	Enabled     bool   `toml:"enabled"`
	APIKey      string `toml:"api_key"`
	FromEmail   string `toml:"from_email"`
	FromName    string `toml:"from_name"`
	IssuesEmail string `toml:"issues_email"`
	IPEmail     string `toml:"ip_email"`
	Timeout     int    `toml:"timeout"`
}

type WatchdogConfig struct {
	Enabled      bool   `toml:"enabled"`
	Schedule     string `toml:"schedule"`
	IPServiceURL string `toml:"ip_service_url"`
	Timeout      int    `toml:"timeout"`
}

// ReservationsConfig лимиты и окна бронирования
type ReservationsConfig struct {
	FamilyMaxPerWeek         int  `toml:"family_max_per_week"`
	FamilyMaxPerDay          int  `toml:"family_max_per_day"`
	LapMaxPerWeek            int  `toml:"lap_max_per_week"`
	LapMaxPerDay             int  `toml:"lap_max_per_day"`
	CutoffWeekday            int  `toml:"cutoff_weekday"` // 0 = воскресенье
	CutoffHour               int  `toml:"cutoff_hour"`
	SeasonEndMonth           int  `toml:"season_end_month"` // 0 = без ограничения сезона
	SeasonEndDay             int  `toml:"season_end_day"`
	SameDayExceptionDisabled bool `toml:"same_day_exception_disabled"`
}

// Load читает конфигурацию из TOML-файла и переменных окружения (.env подхватывается автоматически)
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults(md)
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction возвращает true для production окружения
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// BookingPolicy собирает правила бронирования в часовом поясе клуба
func (c *Config) BookingPolicy() (domain.BookingPolicy, error) {
	loc, err := time.LoadLocation(c.Google.TimeZone)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: google.time_zone %q: %v", ErrInvalidConfig, c.Google.TimeZone, err)
	}

	r := c.Reservations
	return domain.BookingPolicy{
		FamilyMaxPerWeek:         r.FamilyMaxPerWeek,
		FamilyMaxPerDay:          r.FamilyMaxPerDay,
		LapMaxPerWeek:            r.LapMaxPerWeek,
		LapMaxPerDay:             r.LapMaxPerDay,
		CutoffWeekday:            time.Weekday(r.CutoffWeekday),
		CutoffHour:               r.CutoffHour,
		SeasonEndMonth:           time.Month(r.SeasonEndMonth),
		SeasonEndDay:             r.SeasonEndDay,
		SameDayExceptionDisabled: r.SameDayExceptionDisabled,
		Location:                 loc,
	}, nil
}

func (c *Config) applyDefaults(md toml.MetaData) {
	setDefault(&c.Environment, EnvProduction)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.ServiceName, "swimclub")
	setDefault(&c.Metrics.Path, "/metrics")

	setDefaultInt(&c.Server.HTTPPort, 8080)
	setDefaultInt(&c.Server.ReadTimeout, 15)
	setDefaultInt(&c.Server.WriteTimeout, 15)
	setDefaultInt(&c.Server.IdleTimeout, 60)
	setDefaultInt(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Host, "localhost")
	setDefaultInt(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefaultInt(&c.Database.MaxOpenConns, 10)
	setDefaultInt(&c.Database.MaxIdleConns, 5)
	setDefaultInt(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Google.TimeZone, "America/Los_Angeles")
	setDefaultInt(&c.Google.Timeout, 10)

	setDefault(&c.Redis.Addr, "localhost:6379")
	setDefaultInt(&c.Redis.LockTTL, 30)
	setDefaultInt(&c.Redis.LockWait, 10)

	setDefault(&c.Broker.Exchange, "swimclub")
	setDefault(&c.Broker.NotifyQueue, "reservation_notifications")

	setDefault(&c.Mailer.FromName, "Swim Club")
	setDefaultInt(&c.Mailer.Timeout, 5)

	setDefault(&c.Watchdog.Schedule, "*/5 * * * *")
	setDefault(&c.Watchdog.IPServiceURL, "https://api.ipify.org")
	setDefaultInt(&c.Watchdog.Timeout, 10)

	r := &c.Reservations
	setDefaultInt(&r.FamilyMaxPerWeek, 3)
	setDefaultInt(&r.FamilyMaxPerDay, 1)
	setDefaultInt(&r.LapMaxPerWeek, 4)
	setDefaultInt(&r.LapMaxPerDay, 2)
	// 0 допустимое значение для дня и часа, поэтому смотрим, задан ли ключ
	if !md.IsDefined("reservations", "cutoff_weekday") {
		r.CutoffWeekday = 4 // четверг
	}
	if !md.IsDefined("reservations", "cutoff_hour") {
		r.CutoffHour = 18
	}
}

// applyEnv переопределяет секреты и параметры развертывания из окружения
func (c *Config) applyEnv() {
	overrideString(&c.Environment, "APP_ENV")
	overrideString(&c.Auth.JWTSecret, "JWT_SECRET")
	overrideString(&c.Database.Host, "DATABASE_HOST")
	overrideInt(&c.Database.Port, "DATABASE_PORT")
	overrideString(&c.Database.User, "DATABASE_USER")
	overrideString(&c.Database.Password, "DATABASE_PASSWORD")
	overrideString(&c.Database.DBName, "DATABASE_NAME")
	overrideString(&c.Google.CredentialsFile, "GOOGLE_CREDENTIALS_FILE")
	overrideString(&c.Google.CalendarID, "GOOGLE_CALENDAR_ID")
	overrideString(&c.Google.SpreadsheetID, "GOOGLE_SPREADSHEET_ID")
	overrideString(&c.Redis.Addr, "REDIS_ADDR")
	overrideString(&c.Redis.Password, "REDIS_PASSWORD")
	overrideString(&c.Broker.URL, "RABBITMQ_URL")
	overrideString(&c.Mailer.APIKey, "MAILERSEND_API_KEY")
	overrideString(&c.Mailer.FromEmail, "MAILERSEND_EMAIL")
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (JWT_SECRET) is required", ErrInvalidConfig)
	}
	if c.Google.CalendarID == "" {
		return fmt.Errorf("%w: google.calendar_id is required", ErrInvalidConfig)
	}
	if c.Google.SpreadsheetID == "" {
		return fmt.Errorf("%w: google.spreadsheet_id is required", ErrInvalidConfig)
	}
	if c.Broker.Enabled && c.Broker.URL == "" {
		return fmt.Errorf("%w: broker.url (RABBITMQ_URL) is required when broker is enabled", ErrInvalidConfig)
	}
	if c.Mailer.Enabled && (c.Mailer.APIKey == "" || c.Mailer.FromEmail == "") {
		return fmt.Errorf("%w: mailer.api_key and mailer.from_email are required when mailer is enabled", ErrInvalidConfig)
	}
	if c.Reservations.CutoffWeekday < 0 || c.Reservations.CutoffWeekday > 6 {
		return fmt.Errorf("%w: reservations.cutoff_weekday must be 0..6", ErrInvalidConfig)
	}
	if c.Reservations.CutoffHour < 0 || c.Reservations.CutoffHour > 23 {
		return fmt.Errorf("%w: reservations.cutoff_hour must be 0..23", ErrInvalidConfig)
	}
	if c.Reservations.SeasonEndMonth < 0 || c.Reservations.SeasonEndMonth > 12 {
		return fmt.Errorf("%w: reservations.season_end_month must be 0..12", ErrInvalidConfig)
	}
	return nil
}

func setDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func setDefaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func overrideString(v *string, key string) {
	if env, ok := os.LookupEnv(key); ok && env != "" {
		*v = env
	}
}

func overrideInt(v *int, key string) {
	env, ok := os.LookupEnv(key)
	if !ok || env == "" {
		return
	}
	if n, err := strconv.Atoi(env); err == nil {
		*v = n
	}
}
