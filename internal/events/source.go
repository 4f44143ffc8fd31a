package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tea-estate/internal/domain"
)

// ErrClosed is returned by Next once the transport has gone away.
var ErrClosed = errors.New("events: subscription closed")

// Source opens subscriptions on a push transport. Subscribe also announces
// each channel's join message.
type Source interface {
	Subscribe(ctx context.Context, channels []domain.Channel) (Subscription, error)
}

type Subscription interface {
	// Next blocks until an event arrives, ctx ends or the transport fails.
	Next(ctx context.Context) (domain.Event, error)
	Close() error
}

var (
	_ Source = (*RedisSource)(nil)
	_ Source = (*KafkaSource)(nil)
	_ Source = (*AMQPSource)(nil)
	_ Source = (*WebhookSource)(nil)
)

func decodeEvent(payload []byte, room string) (domain.Event, error) {
	var ev domain.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return domain.Event{}, fmt.Errorf("decode event: %w", err)
	}
	if ev.Type == "" {
		return domain.Event{}, errors.New("decode event: missing type")
	}
	if ev.Room == "" {
		ev.Room = room
	}
	return ev, nil
}

func roomSet(channels []domain.Channel) map[string]struct{} {
	set := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		set[ch.Room] = struct{}{}
	}
	return set
}
