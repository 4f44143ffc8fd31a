package events

import (
	"context"
	"sync"
	"time"

	"tea-estate/internal/domain"

	"go.uber.org/zap"
)

type Status string

const (
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
	StatusError        Status = "error"
)

const DefaultRetryDelay = 5 * time.Second

type Config struct {
	Channels   []domain.Channel
	RetryDelay time.Duration
	// OnStatus, when set, is told about every connection state change.
	OnStatus func(status Status, err error)
	Logger   *zap.Logger
}

// Client keeps one subscription alive for the life of the process and feeds
// every event to its dispatcher.
type Client struct {
	source     Source
	dispatcher *Dispatcher
	config     Config
	logger     *zap.Logger
}

func NewClient(source Source, dispatcher *Dispatcher, config Config) *Client {
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		source:     source,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger,
	}
}

// Run subscribes and dispatches until ctx is done, reconnecting after
// RetryDelay whenever the subscription cannot be opened or breaks.
func (c *Client) Run(ctx context.Context) {
	rooms := domain.Rooms(c.config.Channels)
	for {
		sub, err := c.source.Subscribe(ctx, c.config.Channels)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("subscribe failed", zap.Strings("rooms", rooms), zap.Error(err))
			c.status(StatusError, err)
			if !c.wait(ctx) {
				return
			}
			continue
		}

		c.logger.Info("event stream connected", zap.Strings("rooms", rooms))
		c.status(StatusConnected, nil)
		// Some sources block in Next regardless of ctx; closing the
		// subscription is what unblocks them.
		release := context.AfterFunc(ctx, func() { _ = sub.Close() })
		err = c.consume(ctx, sub)
		release()
		_ = sub.Close()

		if ctx.Err() != nil {
			c.status(StatusDisconnected, nil)
			return
		}
		c.logger.Warn("event stream lost", zap.Error(err))
		c.status(StatusDisconnected, err)
		if !c.wait(ctx) {
			return
		}
	}
}

// Start runs the client in the background. The returned stop function
// cancels it and waits for the loop to exit.
func (c *Client) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Run(ctx)
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}

func (c *Client) consume(ctx context.Context, sub Subscription) error {
	for {
		ev, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.dispatcher.Dispatch(ctx, ev)
	}
}

func (c *Client) wait(ctx context.Context) bool {
	t := time.NewTimer(c.config.RetryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Client) status(s Status, err error) {
	if c.config.OnStatus != nil {
		c.config.OnStatus(s, err)
	}
}
