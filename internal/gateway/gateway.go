package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:5000/api".
	BaseURL string
	// Token returns the current bearer credential. Only admin endpoints use it.
	Token func() string
	// OnUnauthorized runs when an authenticated call is rejected or the
	// credential has already expired.
	OnUnauthorized func()
	Logger         *zap.Logger
	Now            func() time.Time
}

type Gateway struct {
	config Config
	client HTTPClient
	logger *zap.Logger
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &Gateway{
		config: config,
		client: client,
		logger: logger,
	}
}

type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

func (g *Gateway) do(ctx context.Context, r request, out any) error {
	var token string
	if r.auth {
		if g.config.Token != nil {
			token = g.config.Token()
		}
		if token == "" || TokenExpired(token, g.config.Now()) {
			g.logger.Info("credential missing or expired", zap.String("path", r.path))
			g.unauthorized()
			return ErrUnauthorized
		}
	}

	target := g.config.BaseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var payload io.Reader
	if r.body != nil {
		encoded, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s body: %w", r.path, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, payload)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.logger.Debug("request", zap.String("method", r.method), zap.String("path", r.path))
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("request failed", zap.String("method", r.method), zap.String("path", r.path), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, r.method, r.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrTransport, r.path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && r.auth {
		g.logger.Info("credential rejected", zap.String("path", r.path))
		g.unauthorized()
		return ErrUnauthorized
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode >= 300 || env.Error != "" {
		message := env.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, r.path, decodeErr)
	}
	if env.Success != nil && !*env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: "request was not successful"}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, r.path, err)
	}
	return nil
}

func (g *Gateway) unauthorized() {
	if g.config.OnUnauthorized != nil {
		g.config.OnUnauthorized()
	}
}

// IsTransient reports failures that say nothing about the request itself.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransport)
}
