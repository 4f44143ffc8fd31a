package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tea-estate/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisSource reads events from Redis pub/sub, one channel per room named
// "<prefix>:<room>". Joins are published on "<prefix>:presence".
type RedisSource struct {
	Client *redis.Client
	Prefix string
	Logger *zap.Logger
}

func NewRedisSource(client *redis.Client, prefix string, logger *zap.Logger) *RedisSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSource{Client: client, Prefix: prefix, Logger: logger}
}

func (s *RedisSource) ChannelName(room string) string {
	return s.Prefix + ":" + room
}

func (s *RedisSource) PresenceChannel() string {
	return s.ChannelName("presence")
}

func (s *RedisSource) Subscribe(ctx context.Context, channels []domain.Channel) (Subscription, error) {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, s.ChannelName(ch.Room))
	}
	pubsub := s.Client.Subscribe(ctx, names...)
	// Wait for the subscription confirmation so no event published after
	// Subscribe returns is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	for _, ch := range channels {
		payload, _ := json.Marshal(ch)
		if err := s.Client.Publish(ctx, s.PresenceChannel(), payload).Err(); err != nil {
			_ = pubsub.Close()
			return nil, fmt.Errorf("redis announce %s: %w", ch.Room, err)
		}
	}
	return &redisSubscription{source: s, pubsub: pubsub}, nil
}

type redisSubscription struct {
	source *RedisSource
	pubsub *redis.PubSub
}

func (r *redisSubscription) Next(ctx context.Context) (domain.Event, error) {
	for {
		msg, err := r.pubsub.ReceiveMessage(ctx)
		if err != nil {
			return domain.Event{}, err
		}
		room := strings.TrimPrefix(msg.Channel, r.source.Prefix+":")
		ev, err := decodeEvent([]byte(msg.Payload), room)
		if err != nil {
			r.source.Logger.Warn("dropping malformed event", zap.String("channel", msg.Channel), zap.Error(err))
			continue
		}
		return ev, nil
	}
}

func (r *redisSubscription) Close() error {
	return r.pubsub.Close()
}
