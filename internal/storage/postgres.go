package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore keeps kiosk state in a shared database, one row per
// (device, key).
type PostgresStore struct {
	DB     *sql.DB
	Device string
}

func NewPostgresStore(db *sql.DB, device string) *PostgresStore {
	return &PostgresStore{DB: db, Device: device}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS local_storage (
			device TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (device, key)
		)
	`)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, `
		SELECT value FROM local_storage
		WHERE device = $1 AND key = $2
	`, s.Device, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

const upsertSQL = `
	INSERT INTO local_storage (device, key, value)
	VALUES ($1, $2, $3)
	ON CONFLICT (device, key)
	DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
`

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx, upsertSQL, s.Device, key, value)
	return err
}

func (s *PostgresStore) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, upsertSQL, s.Device, key, value); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		_, err := s.DB.ExecContext(ctx, `
			DELETE FROM local_storage
			WHERE device = $1 AND key = $2
		`, s.Device, key)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.DB.Close()
}
