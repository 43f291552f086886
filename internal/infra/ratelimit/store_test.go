package ratelimit

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, limit int) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, 15*time.Minute, limit, newDiscardLogger()), mr
}

func TestRedisStore_FixedWindow(t *testing.T) {
	store, _ := newTestStore(t, 3)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start }

	for i := 0; i < 3; i++ {
		ok, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, err := store.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Allow("10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other clients have their own window")

	store.now = func() time.Time { return start.Add(15 * time.Minute) }
	ok, err = store.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok, "next window resets the count")
}

func TestRedisStore_SetsExpiry(t *testing.T) {
	store, mr := newTestStore(t, 10)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start }

	_, err := store.Allow("client")
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, 15*time.Minute, mr.TTL(keys[0]))
}

func TestRedisStore_FailsOpen(t *testing.T) {
	store, mr := newTestStore(t, 1)
	mr.Close()

	ok, err := store.Allow("client")
	assert.NoError(t, err)
	assert.True(t, ok)
}
