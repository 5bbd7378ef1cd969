package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tkardach/SwimClubServer/internal/integrations/broker"
	"github.com/tkardach/SwimClubServer/internal/integrations/mailer"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

const (
	SubjectConfirmed = "Swim Club Reservation Confirmed"
	SubjectCancelled = "Swim Club Reservation Cancelled"
)

// Source источник сообщений (брокер)
type Source interface {
	DeclareAndBindQueue(queueName string, routingKeys ...string) error
	Consume(queueName string, prefetch int) (<-chan amqp.Delivery, error)
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

// Notifier читает события бронирований и отправляет участникам письма
type Notifier struct {
	source      Source
	mailer      Mailer
	queue       string
	workers     int
	sendTimeout time.Duration
	log         Logger
	wg          sync.WaitGroup
}

// New создает новый экземпляр Notifier
func New(source Source, mailer Mailer, queue string, workers int, sendTimeout time.Duration, log Logger) *Notifier {
	if workers <= 0 {
		workers = 1
	}
	return &Notifier{
		source:      source,
		mailer:      mailer,
		queue:       queue,
		workers:     workers,
		sendTimeout: sendTimeout,
		log:         log,
	}
}

// Start объявляет очередь и запускает обработчики сообщений
// Обработчики завершаются при отмене ctx или закрытии канала доставки
func (n *Notifier) Start(ctx context.Context) error {
	err := n.source.DeclareAndBindQueue(n.queue, broker.RoutingReservationCreated, broker.RoutingReservationDeleted)
	if err != nil {
		return fmt.Errorf("notifier: declare queue: %w", err)
	}

	msgs, err := n.source.Consume(n.queue, n.workers)
	if err != nil {
		return fmt.Errorf("notifier: consume: %w", err)
	}

	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.worker(ctx, i, msgs)
	}

	n.log.Info("Notifier: started %d workers on queue %s", n.workers, n.queue)
	return nil
}

// Wait ждет завершения всех обработчиков
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) worker(ctx context.Context, id int, msgs <-chan amqp.Delivery) {
	defer n.wg.Done()

	for {
		select {
		case <-ctx.Done():
			n.log.Info("Notifier: worker %d stopping", id)
			return
		case msg, ok := <-msgs:
			if !ok {
				n.log.Warn("Notifier: worker %d: delivery channel closed", id)
				return
			}
			n.Handle(ctx, msg)
		}
	}
}

// Handle обрабатывает одно сообщение
// Некорректные сообщения отклоняются без повторной доставки,
// ошибка отправки письма возвращает сообщение в очередь один раз
func (n *Notifier) Handle(ctx context.Context, msg amqp.Delivery) {
	var event broker.ReservationMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		n.log.Error("Notifier: malformed message %s: %v", msg.MessageId, err)
		_ = msg.Reject(false)
		return
	}

	email, ok := BuildEmail(event)
	if !ok {
		n.log.Warn("Notifier: skipping message %s (kind=%s, no recipient)", event.MessageID, event.Kind)
		_ = msg.Ack(false)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.sendTimeout)
	defer cancel()

	if err := n.mailer.Send(sendCtx, email); err != nil {
		if errors.Is(err, mailer.ErrDisabled) || errors.Is(err, mailer.ErrInvalidMessage) {
			_ = msg.Ack(false)
			return
		}
		n.log.Error("Notifier: failed to send %s for %s: %v", event.Kind, event.MemberEmail, err)
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}

	n.log.Info("Notifier: sent %s email to %s", event.Kind, event.MemberEmail)
	_ = msg.Ack(false)
}

// BuildEmail собирает письмо по событию бронирования
// false означает, что письмо отправлять не нужно
func BuildEmail(event broker.ReservationMessage) (mailer.Message, bool) {
	if event.MemberEmail == "" {
		return mailer.Message{}, false
	}

	when := fmt.Sprintf("%s from %s to %s",
		event.Date, types.NumericTime(event.Start).String(), types.NumericTime(event.End).String())

	switch event.Kind {
	case broker.RoutingReservationCreated:
		text := fmt.Sprintf("Your %s reservation on %s is confirmed.", event.ReservationType, when)
		if event.NumberSwimmers > 1 {
			text += fmt.Sprintf("\nSwimmers: %d", event.NumberSwimmers)
		}
		if event.LastName != "" {
			text = fmt.Sprintf("Hello %s family,\n\n%s", event.LastName, text)
		}
		return mailer.Message{
			To:      []string{event.MemberEmail},
			Subject: SubjectConfirmed,
			Text:    text,
		}, true
	case broker.RoutingReservationDeleted:
		return mailer.Message{
			To:      []string{event.MemberEmail},
			Subject: SubjectCancelled,
			Text:    fmt.Sprintf("Your %s reservation on %s has been cancelled.", event.ReservationType, when),
		}, true
	default:
		return mailer.Message{}, false
	}
}
