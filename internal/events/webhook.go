package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"tea-estate/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// WebhookSource listens for events pushed by a relay as
// POST /events/{room}. There is no upstream to announce joins to, so they
// are only logged.
type WebhookSource struct {
	Addr   string
	Logger *zap.Logger
}

func NewWebhookSource(addr string, logger *zap.Logger) *WebhookSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookSource{Addr: addr, Logger: logger}
}

// Handler accepts events for the given rooms and delivers them on out.
func (s *WebhookSource) Handler(channels []domain.Channel, out chan<- domain.Event) http.Handler {
	rooms := roomSet(channels)
	r := mux.NewRouter()
	r.HandleFunc("/events/{room}", func(w http.ResponseWriter, req *http.Request) {
		room := mux.Vars(req)["room"]
		if _, ok := rooms[room]; !ok {
			http.Error(w, `{"error":"unknown room"}`, http.StatusNotFound)
			return
		}
		var raw json.RawMessage
		if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
			http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
			return
		}
		ev, err := decodeEvent(raw, room)
		if err != nil {
			http.Error(w, `{"error":"invalid event"}`, http.StatusBadRequest)
			return
		}
		select {
		case out <- ev:
			w.WriteHeader(http.StatusAccepted)
		case <-req.Context().Done():
		}
	}).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

func (s *WebhookSource) Subscribe(ctx context.Context, channels []domain.Channel) (Subscription, error) {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return nil, fmt.Errorf("webhook listen %s: %w", s.Addr, err)
	}
	events := make(chan domain.Event, 16)
	sub := &webhookSubscription{
		events: events,
		done:   make(chan struct{}),
		addr:   ln.Addr(),
		server: &http.Server{
			Handler:           s.Handler(channels, events),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	go func() {
		defer close(sub.done)
		if err := sub.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Warn("webhook server stopped", zap.Error(err))
		}
	}()
	for _, ch := range channels {
		s.Logger.Info("listening for room", zap.String("room", ch.Room), zap.String("announce", ch.Announce))
	}
	return sub, nil
}

type webhookSubscription struct {
	events chan domain.Event
	done   chan struct{}
	addr   net.Addr
	server *http.Server
}

func (w *webhookSubscription) Addr() net.Addr { return w.addr }

func (w *webhookSubscription) Next(ctx context.Context) (domain.Event, error) {
	select {
	case <-ctx.Done():
		return domain.Event{}, ctx.Err()
	case <-w.done:
		return domain.Event{}, ErrClosed
	case ev := <-w.events:
		return ev, nil
	}
}

func (w *webhookSubscription) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return w.server.Shutdown(ctx)
}
