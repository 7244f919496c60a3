package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, time.Hour)
}

func TestReserveAndFinalize(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, ok, err := store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, id)

	require.NoError(t, store.Finalize(ctx, "key-1", "appointment-1"))

	// A retry sees the finalized appointment id.
	id, ok, err = store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "appointment-1", id)
}

func TestReserveInFlight(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	require.True(t, ok)

	// Second attempt while the first is still writing: no id, no claim.
	id, ok, err := store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestReleaseFreesKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	require.True(t, ok)

	store.Release(ctx, "key-1")

	_, ok, err = store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDistinctKeysAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = store.Reserve(ctx, "key-2")
	require.NoError(t, err)
	assert.True(t, ok)
}
