package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lueurxax/intel-watch/internal/core/errors"
)

// CacheEntry is one stored value.
type CacheEntry struct {
	Key      string
	Data     string
	Modified time.Time
	MaxAge   time.Duration
}

// Expired reports whether the entry is past its max age at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return now.Sub(e.Modified) > e.MaxAge
}

// GetCache returns the value stored under key. Missing entries return
// errors.ErrCacheNotFound, stale ones errors.ErrCacheExpired.
func (db *DB) GetCache(ctx context.Context, key string) (string, error) {
	row := db.SQL.QueryRowContext(ctx, `
		SELECT key, data, modified, max_age
		FROM cache
		WHERE key = ?
	`, key)

	var (
		e        CacheEntry
		modified int64
		maxAge   int64
	)

	if err := row.Scan(&e.Key, &e.Data, &modified, &maxAge); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errors.ErrCacheNotFound
		}

		return "", fmt.Errorf("get cache: %w", err)
	}

	e.Modified = time.Unix(modified, 0)
	e.MaxAge = time.Duration(maxAge) * time.Second

	if e.Expired(db.now()) {
		return "", errors.ErrCacheExpired
	}

	return e.Data, nil
}

// PutCache stores data under key for maxAge, replacing any older value.
func (db *DB) PutCache(ctx context.Context, key, data string, maxAge time.Duration) error {
	_, err := db.SQL.ExecContext(ctx, `
		INSERT INTO cache (key, data, modified, max_age)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			data = excluded.data,
			modified = excluded.modified,
			max_age = excluded.max_age
	`, key, data, db.now().Unix(), int64(maxAge/time.Second))
	if err != nil {
		return fmt.Errorf("put cache: %w", err)
	}

	return nil
}

// DeleteCache removes key.
func (db *DB) DeleteCache(ctx context.Context, key string) error {
	if _, err := db.SQL.ExecContext(ctx, `DELETE FROM cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete cache: %w", err)
	}

	return nil
}

// PruneCache deletes every expired entry and returns how many were removed.
func (db *DB) PruneCache(ctx context.Context) (int64, error) {
	res, err := db.SQL.ExecContext(ctx, `
		DELETE FROM cache
		WHERE modified + max_age < ?
	`, db.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune cache rows: %w", err)
	}

	return n, nil
}
