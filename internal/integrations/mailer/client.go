package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

const (
	metricsService = "mailersend"
	defaultTimeout = 5 * time.Second
)

// Client отправка писем через MailerSend
type Client struct {
	email   EmailAPI
	from    mailersend.From
	timeout time.Duration
	metrics Metrics
	log     Logger
}

// NewClient создает клиента MailerSend
func NewClient(apiKey, fromEmail, fromName string, timeout time.Duration, metrics Metrics, log Logger) *Client {
	return NewClientWithAPI(mailersend.NewMailersend(apiKey).Email, fromEmail, fromName, timeout, metrics, log)
}

// NewClientWithAPI создает клиента поверх готового EmailAPI
func NewClientWithAPI(email EmailAPI, fromEmail, fromName string, timeout time.Duration, metrics Metrics, log Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		email:   email,
		from:    mailersend.From{Name: fromName, Email: fromEmail},
		timeout: timeout,
		metrics: metrics,
		log:     log,
	}
}

// Send отправляет письмо
func (c *Client) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 || msg.Subject == "" {
		return fmt.Errorf("%w: recipients and subject are required", ErrInvalidMessage)
	}

	recipients := make([]mailersend.Recipient, 0, len(msg.To))
	for _, to := range msg.To {
		recipients = append(recipients, mailersend.Recipient{Email: to})
	}

	message := c.email.NewMessage()
	message.SetFrom(c.from)
	message.SetRecipients(recipients)
	message.SetSubject(msg.Subject)
	message.SetText(msg.Text)
	if msg.HTML != "" {
		message.SetHTML(msg.HTML)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	res, err := c.email.Send(ctx, message)
	if c.metrics != nil {
		c.metrics.ObserveExternalCall(metricsService, "send", started, err)
	}
	if err != nil {
		c.log.Error("Mailer: failed to send %q to %v: %v", msg.Subject, msg.To, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	messageID := ""
	if res != nil && res.Response != nil {
		messageID = res.Header.Get("X-Message-Id")
	}
	c.log.Info("Mailer: sent %q to %v, message id=%s", msg.Subject, msg.To, messageID)
	return nil
}

// Disabled заглушка, когда почта выключена: письма только логируются
type Disabled struct {
	log Logger
}

// NewDisabled создает заглушку отправки
func NewDisabled(log Logger) *Disabled {
	return &Disabled{log: log}
}

// Send логирует письмо и возвращает ErrDisabled
func (d *Disabled) Send(_ context.Context, msg Message) error {
	d.log.Warn("Mailer: delivery disabled, dropping %q to %v", msg.Subject, msg.To)
	return ErrDisabled
}
