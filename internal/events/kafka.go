package events

import (
	"context"
	"encoding/json"
	"fmt"

	"tea-estate/internal/domain"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

var (
	_ MessageReader = (*kafka.Reader)(nil)
	_ MessageWriter = (*kafka.Writer)(nil)
)

// KafkaSource consumes the events topic, keyed by room. Every subscription
// joins a fresh consumer group so each process sees every event from the
// newest offset on.
type KafkaSource struct {
	// NewReader opens a reader for the given consumer group.
	NewReader func(groupID string) MessageReader
	Presence  MessageWriter
	Logger    *zap.Logger
}

func NewKafkaSource(brokers []string, topic string, presence MessageWriter, logger *zap.Logger) *KafkaSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaSource{
		NewReader: func(groupID string) MessageReader {
			return kafka.NewReader(kafka.ReaderConfig{
				Brokers:     brokers,
				Topic:       topic,
				GroupID:     groupID,
				StartOffset: kafka.LastOffset,
			})
		},
		Presence: presence,
		Logger:   logger,
	}
}

func (s *KafkaSource) Subscribe(ctx context.Context, channels []domain.Channel) (Subscription, error) {
	if s.Presence != nil {
		msgs := make([]kafka.Message, 0, len(channels))
		for _, ch := range channels {
			payload, _ := json.Marshal(ch)
			msgs = append(msgs, kafka.Message{Key: []byte(ch.Room), Value: payload})
		}
		if err := s.Presence.WriteMessages(ctx, msgs...); err != nil {
			return nil, fmt.Errorf("kafka announce: %w", err)
		}
	}

	groupID := "tea-estate-" + uuid.NewString()
	s.Logger.Debug("kafka subscription", zap.String("group", groupID))
	return &kafkaSubscription{
		source: s,
		reader: s.NewReader(groupID),
		rooms:  roomSet(channels),
	}, nil
}

type kafkaSubscription struct {
	source *KafkaSource
	reader MessageReader
	rooms  map[string]struct{}
}

func (k *kafkaSubscription) Next(ctx context.Context) (domain.Event, error) {
	for {
		message, err := k.reader.ReadMessage(ctx)
		if err != nil {
			return domain.Event{}, err
		}
		room := string(message.Key)
		if _, ok := k.rooms[room]; !ok {
			continue
		}
		ev, err := decodeEvent(message.Value, room)
		if err != nil {
			k.source.Logger.Warn("dropping malformed event", zap.String("room", room), zap.Error(err))
			continue
		}
		return ev, nil
	}
}

func (k *kafkaSubscription) Close() error {
	return k.reader.Close()
}
