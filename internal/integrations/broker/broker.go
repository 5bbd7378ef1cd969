package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeType = "topic"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Broker соединение с RabbitMQ и topic-exchange событий бронирования
type Broker struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	url      string
	log      Logger
}

// NewBroker подключается к RabbitMQ и объявляет exchange
func NewBroker(url, exchange string, log Logger) (*Broker, error) {
	b := &Broker{
		exchange: exchange,
		url:      url,
		log:      log,
	}

	if err := b.connect(); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Broker) connect() error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnection, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: open channel: %v", ErrConnection, err)
	}

	err = ch.ExchangeDeclare(
		b.exchange,
		exchangeType,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("%w: declare exchange %s: %v", ErrConnection, b.exchange, err)
	}

	b.conn = conn
	b.channel = ch
	return nil
}

// ensureConnection переподключается после разрыва; вызывается под b.mu
func (b *Broker) ensureConnection() error {
	if b.conn != nil && !b.conn.IsClosed() && b.channel != nil && !b.channel.IsClosed() {
		return nil
	}
	b.log.Warn("Broker: connection lost, reconnecting")
	return b.connect()
}

// Publish сериализует message в JSON и публикует с ключом key
func (b *Broker) Publish(ctx context.Context, key string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureConnection(); err != nil {
		return err
	}

	err = b.channel.PublishWithContext(ctx,
		b.exchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, key, err)
	}

	b.log.Info("Broker: published %s (%d bytes)", key, len(body))
	return nil
}

// DeclareAndBindQueue объявляет durable-очередь и привязывает ее к exchange
func (b *Broker) DeclareAndBindQueue(queueName string, routingKeys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureConnection(); err != nil {
		return err
	}

	_, err := b.channel.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%w: declare queue %s: %v", ErrConsume, queueName, err)
	}

	for _, key := range routingKeys {
		if err := b.channel.QueueBind(queueName, key, b.exchange, false, nil); err != nil {
			return fmt.Errorf("%w: bind %s to %s: %v", ErrConsume, queueName, key, err)
		}
	}
	return nil
}

// Consume подписывается на очередь с ручным подтверждением
func (b *Broker) Consume(queueName string, prefetch int) (<-chan amqp.Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureConnection(); err != nil {
		return nil, err
	}

	if prefetch > 0 {
		if err := b.channel.Qos(prefetch, 0, false); err != nil {
			return nil, fmt.Errorf("%w: qos: %v", ErrConsume, err)
		}
	}

	msgs, err := b.channel.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConsume, queueName, err)
	}

	return msgs, nil
}

// Close закрывает канал и соединение
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channel != nil {
		if err := b.channel.Close(); err != nil && err != amqp.ErrClosed {
			return fmt.Errorf("%w: close channel: %v", ErrConnection, err)
		}
	}
	if b.conn != nil {
		if err := b.conn.Close(); err != nil && err != amqp.ErrClosed {
			return fmt.Errorf("%w: close connection: %v", ErrConnection, err)
		}
	}
	return nil
}

// NopPublisher используется, когда брокер выключен
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, string, interface{}) error {
	return nil
}
