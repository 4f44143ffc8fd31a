package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tea-estate/internal/domain"
	"tea-estate/internal/storage"

	"go.uber.org/zap"
)

const (
	KeyCart        = "cart"
	KeyTableNumber = "tableNumber"
	KeyAdminToken  = "adminToken"
)

// CartStore persists the cart together with the session key it belongs to.
type CartStore struct {
	store  storage.LocalStore
	logger *zap.Logger
}

func NewCartStore(store storage.LocalStore, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{store: store, logger: logger}
}

func (s *CartStore) Save(ctx context.Context, sessionKey string, cart *Cart) error {
	entries := cart.Entries()
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.SetMany(ctx, map[string]string{
		KeyCart:        string(payload),
		KeyTableNumber: sessionKey,
	}); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Restore returns the stored cart when it was saved under sessionKey. Any
// other stored state is discarded and an empty cart is returned.
func (s *CartStore) Restore(ctx context.Context, sessionKey string) (*Cart, error) {
	storedKey, err := s.store.Get(ctx, KeyTableNumber)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return NewCart(nil), fmt.Errorf("read session key: %w", err)
	}
	if storedKey != sessionKey {
		if storedKey != "" {
			s.logger.Info("stored cart belongs to another session, discarding",
				zap.String("stored", storedKey), zap.String("current", sessionKey))
		}
		return NewCart(nil), s.reset(ctx)
	}

	raw, err := s.store.Get(ctx, KeyCart)
	if errors.Is(err, storage.ErrNotFound) {
		return NewCart(nil), nil
	}
	if err != nil {
		return NewCart(nil), fmt.Errorf("read cart: %w", err)
	}

	var entries []domain.CartEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("stored cart is corrupt, discarding", zap.Error(err))
		return NewCart(nil), s.reset(ctx)
	}
	return NewCart(entries), nil
}

func (s *CartStore) reset(ctx context.Context) error {
	if err := s.store.Delete(ctx, KeyCart, KeyTableNumber); err != nil {
		return fmt.Errorf("reset cart: %w", err)
	}
	return nil
}
