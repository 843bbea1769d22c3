package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/core/port"
)

func TestCacheRoundTripAndExpiry(t *testing.T) {
	c := NewCache(30 * time.Second)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, port.EntityRestaurants, "all", []string{"a", "b"}))

	var got []string
	hit, err := c.Get(ctx, port.EntityRestaurants, "all", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got)

	now = now.Add(31 * time.Second)
	hit, err = c.Get(ctx, port.EntityRestaurants, "all", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheInvalidateDropsOnlyEntity(t *testing.T) {
	c := NewCache(time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, port.EntityPosts, "all", 1))
	require.NoError(t, c.Set(ctx, port.EntityPosts, "r1", 2))
	require.NoError(t, c.Set(ctx, port.EntityAdSets, "all", 3))

	require.NoError(t, c.Invalidate(ctx, port.EntityPosts))

	var v int
	hit, _ := c.Get(ctx, port.EntityPosts, "r1", &v)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, port.EntityAdSets, "all", &v)
	assert.True(t, hit)
	assert.Equal(t, 3, v)
}
