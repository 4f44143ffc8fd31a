package events

import (
	"context"
	"sync"

	"tea-estate/internal/domain"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, ev domain.Event)

// Dispatcher routes each event to the handler registered for its kind.
// Kinds without a handler are logged and dropped.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[domain.EventKind]HandlerFunc
	logger   *zap.Logger
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		handlers: make(map[domain.EventKind]HandlerFunc),
		logger:   logger,
	}
}

// Handle registers fn for kind, replacing any earlier handler.
func (d *Dispatcher) Handle(kind domain.EventKind, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = fn
}

// Dispatch reports whether a handler ran.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.Event) bool {
	d.mu.RLock()
	fn, ok := d.handlers[ev.Type]
	d.mu.RUnlock()
	if !ok {
		d.logger.Debug("no handler for event", zap.String("type", string(ev.Type)), zap.String("room", ev.Room))
		return false
	}
	fn(ctx, ev)
	return true
}
