package session

import (
	"context"
	"errors"

	"tea-estate/internal/storage"
)

type CredentialStore struct {
	store storage.LocalStore
}

func NewCredentialStore(store storage.LocalStore) *CredentialStore {
	return &CredentialStore{store: store}
}

// Token returns the stored admin token, or "" when none is stored.
func (s *CredentialStore) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, KeyAdminToken)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (s *CredentialStore) Save(ctx context.Context, token string) error {
	return s.store.Set(ctx, KeyAdminToken, token)
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, KeyAdminToken)
}
