package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tea-estate/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPSource binds a private queue to a topic exchange with one routing key
// per room. Joins are published with the presence routing key.
type AMQPSource struct {
	URL         string
	Exchange    string
	PresenceKey string
	Logger      *zap.Logger
}

func NewAMQPSource(url, exchange string, logger *zap.Logger) *AMQPSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AMQPSource{URL: url, Exchange: exchange, PresenceKey: "presence", Logger: logger}
}

func (s *AMQPSource) Subscribe(ctx context.Context, channels []domain.Channel) (Subscription, error) {
	conn, err := amqp.Dial(s.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	sub := &amqpSubscription{source: s, conn: conn, ch: ch}

	if err := ch.ExchangeDeclare(s.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("amqp declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("amqp declare queue: %w", err)
	}
	for _, c := range channels {
		if err := ch.QueueBind(q.Name, c.Room, s.Exchange, false, nil); err != nil {
			_ = sub.Close()
			return nil, fmt.Errorf("amqp bind %s: %w", c.Room, err)
		}
	}
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("amqp consume: %w", err)
	}
	sub.deliveries = deliveries

	for _, c := range channels {
		body, _ := json.Marshal(c)
		err := ch.PublishWithContext(ctx, s.Exchange, s.PresenceKey, false, false, amqp.Publishing{
			Timestamp:   time.Now().UTC(),
			ContentType: "application/json",
			Body:        body,
		})
		if err != nil {
			_ = sub.Close()
			return nil, fmt.Errorf("amqp announce %s: %w", c.Room, err)
		}
	}
	return sub, nil
}

type amqpSubscription struct {
	source     *AMQPSource
	conn       *amqp.Connection
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
}

func (a *amqpSubscription) Next(ctx context.Context) (domain.Event, error) {
	for {
		select {
		case <-ctx.Done():
			return domain.Event{}, ctx.Err()
		case d, ok := <-a.deliveries:
			if !ok {
				return domain.Event{}, ErrClosed
			}
			ev, err := decodeEvent(d.Body, d.RoutingKey)
			if err != nil {
				a.source.Logger.Warn("dropping malformed event", zap.String("routing_key", d.RoutingKey), zap.Error(err))
				continue
			}
			return ev, nil
		}
	}
}

func (a *amqpSubscription) Close() error {
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}
