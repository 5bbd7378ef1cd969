package watchdog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tkardach/SwimClubServer/internal/integrations/mailer"
)

const (
	SubjectStartup = "***ATTENTION*** PUBLIC IP ADDRESS UPDATED ***ATTENTION***"
	SubjectChanged = "***URGENT*** PUBLIC IP ADDRESS CHANGE ***URGENT***"

	bodyStartup = `Either the server is starting up, or the IP Address has changed.

Current public IP Address: %s
`
	bodyChanged = `This is a scripted response intended to alarm us when our server's public IP Address has changed.

We need to redirect our domain name to point to the new public IP address when this occurs.

The new public IP address: %s
`
)

// IPLookup получение внешнего IP-адреса
type IPLookup interface {
	GetPublicIP(ctx context.Context) (string, error)
}

// Mailer отправка писем
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// State последний известный внешний адрес
type State struct {
	mu          sync.Mutex
	lastIP      string
	lastChecked time.Time
}

// LastIP возвращает последний известный адрес ("" до первой проверки)
func (s *State) LastIP() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastIP
}

// LastChecked возвращает время последней успешной проверки
func (s *State) LastChecked() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastChecked
}

func (s *State) update(ip string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastIP = ip
	s.lastChecked = at
}

// Watchdog периодически проверяет внешний IP и сообщает о его смене
type Watchdog struct {
	lookup    IPLookup
	mailer    Mailer
	recipient string
	schedule  string
	timeout   time.Duration
	state     *State
	cron      *cron.Cron
	log       Logger
	mu        sync.Mutex // одна проверка одновременно
}

// New создает новый экземпляр Watchdog
func New(lookup IPLookup, mailer Mailer, recipient, schedule string, timeout time.Duration, log Logger) *Watchdog {
	return &Watchdog{
		lookup:    lookup,
		mailer:    mailer,
		recipient: recipient,
		schedule:  schedule,
		timeout:   timeout,
		state:     &State{},
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		log:       log,
	}
}

// State возвращает состояние наблюдателя
func (w *Watchdog) State() *State {
	return w.state
}

// Start выполняет первую проверку и запускает проверки по расписанию
func (w *Watchdog) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		checkCtx, cancel := context.WithTimeout(ctx, w.timeout)
		defer cancel()

		if err := w.Check(checkCtx); err != nil {
			w.log.Error("Watchdog: check failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("watchdog: invalid schedule %q: %w", w.schedule, err)
	}

	// При старте письмо отправляется в любом случае
	go func() {
		checkCtx, cancel := context.WithTimeout(ctx, w.timeout)
		defer cancel()

		if err := w.Check(checkCtx); err != nil {
			w.log.Error("Watchdog: startup check failed: %v", err)
		}
	}()

	w.cron.Start()
	w.log.Info("Watchdog: started with schedule %s", w.schedule)
	return nil
}

// Stop останавливает расписание и ждет завершения текущей проверки
func (w *Watchdog) Stop() {
	<-w.cron.Stop().Done()
	w.log.Info("Watchdog: stopped")
}

// Check сравнивает текущий адрес с последним известным
// Состояние обновляется только после успешной отправки письма,
// поэтому неотправленное уведомление повторится при следующей проверке
func (w *Watchdog) Check(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ip, err := w.lookup.GetPublicIP(ctx)
	if err != nil {
		return fmt.Errorf("watchdog: lookup: %w", err)
	}

	now := time.Now()
	previous := w.state.LastIP()

	var msg mailer.Message
	switch {
	case previous == "":
		w.log.Info("Watchdog: current IP address is %s", ip)
		msg = w.message(SubjectStartup, fmt.Sprintf(bodyStartup, ip))
	case previous != ip:
		w.log.Warn("Watchdog: IP address changed from %s to %s", previous, ip)
		msg = w.message(SubjectChanged, fmt.Sprintf(bodyChanged, ip))
	default:
		w.state.update(ip, now)
		return nil
	}

	if err := w.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("watchdog: notify %s: %w", w.recipient, err)
	}

	w.state.update(ip, now)
	return nil
}

func (w *Watchdog) message(subject, text string) mailer.Message {
	return mailer.Message{
		To:      []string{w.recipient},
		Subject: subject,
		Text:    text,
	}
}
