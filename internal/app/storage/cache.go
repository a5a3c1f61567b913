package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (st *Storage) CacheClear(ctx context.Context) error {
	_, err := st.db.ExecContext(ctx, "DELETE FROM cache")
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

func (st *Storage) CacheCleanUp(ctx context.Context) error {
	_, err := st.db.ExecContext(
		ctx,
		"DELETE FROM cache WHERE expires_at IS NOT NULL AND expires_at < ?",
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache cleanup: %w", err)
	}
	return nil
}

func (st *Storage) CacheDelete(ctx context.Context, key string) error {
	_, err := st.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

func (st *Storage) CacheExists(ctx context.Context, key string) (bool, error) {
	_, err := st.CacheGet(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache exists: %w", err)
	}
	return true, nil
}

func (st *Storage) CacheGet(ctx context.Context, key string) ([]byte, error) {
	row := st.db.QueryRowContext(
		ctx,
		"SELECT value FROM cache WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)",
		key,
		time.Now().UTC(),
	)
	var v []byte
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return v, nil
}

// CacheSetParams are the parameters for CacheSet.
type CacheSetParams struct {
	Key       string
	Value     []byte
	ExpiresAt time.Time // zero value means the key never expires
}

func (st *Storage) CacheSet(ctx context.Context, arg CacheSetParams) error {
	if arg.Key == "" {
		return fmt.Errorf("cache set: missing key")
	}
	var expiresAt sql.NullTime
	if !arg.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: arg.ExpiresAt.UTC(), Valid: true}
	}
	_, err := st.db.ExecContext(
		ctx,
		`INSERT INTO cache (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		arg.Key,
		arg.Value,
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache set %s: %w", arg.Key, err)
	}
	return nil
}
