package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cache:user:a:/itineraries", []byte(`{"ok":true}`), time.Minute))

	body, err := store.Get(ctx, "cache:user:a:/itineraries")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"ok":true}`), body)

	_, err = store.Get(ctx, "cache:user:a:/missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("body"), 10*time.Millisecond))

	_, err := store.Get(ctx, "key")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("body"), time.Minute))

	body, err := store.Get(ctx, "key")
	require.NoError(t, err)
	body[0] = 'X'

	again, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), again)
}

func TestMemoryStore_DeleteByPrefix(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	ctx := context.Background()

	keys := []string{
		"cache:user:alice:/itineraries",
		"cache:user:alice:/itineraries?page=2",
		"cache:user:bob:/itineraries",
	}
	for _, key := range keys {
		require.NoError(t, store.Set(ctx, key, []byte("body"), time.Minute))
	}

	require.NoError(t, store.DeleteByPrefix(ctx, "cache:user:alice:"))

	_, err := store.Get(ctx, "cache:user:alice:/itineraries")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = store.Get(ctx, "cache:user:alice:/itineraries?page=2")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Other namespaces stay intact
	_, err = store.Get(ctx, "cache:user:bob:/itineraries")
	assert.NoError(t, err)

	// Clearing an already-empty namespace is a no-op
	require.NoError(t, store.DeleteByPrefix(ctx, "cache:user:alice:"))
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
