package notify

import (
	"context"
	"sync"
	"time"

	"carwash-booking/internal/pkg/errs"
	"carwash-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes to a durable topic exchange with the event type as
// routing key, so consumers can bind to "booking.#" or a single event.
type AMQPNotifier struct {
	mu       sync.Mutex
	ch       amqpPublisher
	exchange string
	now      func() time.Time
}

func NewAMQPNotifier(ch amqpPublisher, exchange string) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, exchange: exchange, now: time.Now}
}

// DialAMQP opens a connection and a channel and declares the exchange.
func DialAMQP(url, exchange string) (*AMQPNotifier, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, errs.Wrap(err, "rabbitmq dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "rabbitmq channel open")
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "rabbitmq exchange declare")
	}

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return NewAMQPNotifier(ch, exchange), cleanup, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, event shared.BookingEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID.String(),
		Type:         string(event.Type),
		Timestamp:    n.now().UTC(),
		Body:         body,
	}

	// A channel is not safe for concurrent publishes.
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ch.PublishWithContext(ctx, n.exchange, string(event.Type), false, false, pub); err != nil {
		return errs.Wrap(err, "rabbitmq publish")
	}
	return nil
}
