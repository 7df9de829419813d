package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))

	val, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_Miss(t *testing.T) {
	cache := NewMemoryCache()

	val, ok, err := cache.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestMemoryCache_ExpiryAndEvict(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	now := time.Date(2025, 3, 26, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "short", "1", time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", "2", 0))

	now = now.Add(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must not be returned")

	assert.Equal(t, 1, cache.Evict())
	assert.Equal(t, 1, cache.Len())

	val, ok, err := cache.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", val)
}
