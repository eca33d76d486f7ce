package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Channel — часть amqp.Channel, которая нужна издателю.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher публикует события в topic-exchange, routing key равен Action.
type RabbitPublisher struct {
	mu       sync.Mutex
	conn     io.Closer
	ch       Channel
	exchange string
}

// Connect подключается к брокеру с повторными попытками и объявляет exchange.
func Connect(url, exchange string, retries int, delay time.Duration) (*RabbitPublisher, error) {
	const op = "audit.Connect"

	conn, err := dialWithRetry(url, retries, delay, amqp.Dial, time.Sleep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// dialWithRetry делает не меньше одной попытки и не ждёт после последней.
func dialWithRetry(
	url string,
	retries int,
	delay time.Duration,
	dial func(string) (*amqp.Connection, error),
	sleep func(time.Duration),
) (*amqp.Connection, error) {
	if retries < 1 {
		retries = 1
	}
	var err error
	for attempt := 1; ; attempt++ {
		var conn *amqp.Connection
		conn, err = dial(url)
		if err == nil {
			return conn, nil
		}
		if attempt == retries {
			break
		}
		sleep(delay)
	}
	return nil, fmt.Errorf("dial after %d attempts: %w", retries, err)
}

// NewRabbitPublisher оборачивает уже открытый канал.
func NewRabbitPublisher(ch Channel, exchange string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, exchange: exchange}
}

// Publish сериализует событие в JSON и отправляет его как persistent-сообщение.
func (p *RabbitPublisher) Publish(_ context.Context, e Event) error {
	const op = "audit.Publish"

	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.Publish(
		p.exchange,
		string(e.Action),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.At,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение. Соединение закрывается даже при ошибке канала.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
