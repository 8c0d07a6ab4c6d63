package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/intel-watch/internal/core/errors"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache", "intel.sqlite"), nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestCache_PutGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return now }

	_, err := db.GetCache(ctx, "id_name_Pilot")
	assert.True(t, errors.Is(err, errors.ErrCacheNotFound))

	require.NoError(t, db.PutCache(ctx, "id_name_Pilot", "90000001", time.Hour))
	require.NoError(t, db.PutCache(ctx, "id_name_Pilot", "90000002", time.Hour))

	got, err := db.GetCache(ctx, "id_name_Pilot")
	require.NoError(t, err)
	assert.Equal(t, "90000002", got)

	now = now.Add(2 * time.Hour)

	_, err = db.GetCache(ctx, "id_name_Pilot")
	assert.True(t, errors.Is(err, errors.ErrCacheExpired))

	n, err := db.PruneCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = db.GetCache(ctx, "id_name_Pilot")
	assert.True(t, errors.Is(err, errors.ErrCacheNotFound))
}

func TestCache_Delete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.PutCache(ctx, "k", "v", time.Hour))
	require.NoError(t, db.DeleteCache(ctx, "k"))

	_, err := db.GetCache(ctx, "k")
	assert.True(t, errors.Is(err, errors.ErrCacheNotFound))
	assert.NoError(t, db.Ping(ctx))
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intel.sqlite")

	first, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}
