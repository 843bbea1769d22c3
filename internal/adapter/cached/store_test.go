package cached

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/adapter/memory"
	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

// countingStore counts list calls that reach the wrapped store.
type countingStore struct {
	*memory.Store
	restaurantLists int
	adSetLists      int
}

func (s *countingStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	s.restaurantLists++
	return s.Store.ListRestaurants(ctx)
}

func (s *countingStore) ListAdSets(ctx context.Context, restaurantID *string) ([]domain.AdSet, error) {
	s.adSetLists++
	return s.Store.ListAdSets(ctx, restaurantID)
}

func newCached(t *testing.T) (*Store, *countingStore) {
	t.Helper()
	inner := &countingStore{Store: memory.New()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(inner, memory.NewCache(time.Minute), logger), inner
}

func TestListIsServedFromCache(t *testing.T) {
	s, inner := newCached(t)
	ctx := context.Background()
	require.NoError(t, s.CreateRestaurant(ctx, &domain.Restaurant{Name: "A", Slug: "a"}))

	for i := 0; i < 3; i++ {
		list, err := s.ListRestaurants(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	assert.Equal(t, 1, inner.restaurantLists)
}

func TestWriteInvalidatesBeforeReturning(t *testing.T) {
	s, inner := newCached(t)
	ctx := context.Background()
	r := &domain.Restaurant{Name: "A", Slug: "a"}
	require.NoError(t, s.CreateRestaurant(ctx, r))
	_, err := s.ListRestaurants(ctx)
	require.NoError(t, err)

	require.NoError(t, s.SetCampaignID(ctx, r.ID, "cmp-9"))

	list, err := s.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].MetaCampaignID)
	assert.Equal(t, "cmp-9", *list[0].MetaCampaignID)
	assert.Equal(t, 2, inner.restaurantLists)
}

func TestAdSetCountIsNeverStale(t *testing.T) {
	s, inner := newCached(t)
	ctx := context.Background()
	a := &domain.AdSet{RestaurantID: "r", CategoryID: "c", Version: 1, Status: domain.AdSetActive}
	require.NoError(t, s.CreateAdSet(ctx, a))

	_, err := s.ListAdSets(ctx, &a.RestaurantID)
	require.NoError(t, err)
	_, err = s.IncrementAdsCount(ctx, a.ID)
	require.NoError(t, err)

	list, err := s.ListAdSets(ctx, &a.RestaurantID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].AdsCount)
	assert.Equal(t, 2, inner.adSetLists)

	// capacity lookups bypass the cache
	open, err := s.FindOpenAdSet(ctx, domain.PartitionOf(*a), 1)
	assert.ErrorIs(t, err, port.ErrNotFound)
	assert.Nil(t, open)
}

func TestDeleteRestaurantInvalidatesDependents(t *testing.T) {
	s, inner := newCached(t)
	ctx := context.Background()
	r := &domain.Restaurant{Name: "A", Slug: "a"}
	require.NoError(t, s.CreateRestaurant(ctx, r))
	require.NoError(t, s.CreateAdSet(ctx, &domain.AdSet{RestaurantID: r.ID, CategoryID: "c", Version: 1, Status: domain.AdSetActive}))
	_, err := s.ListAdSets(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteRestaurant(ctx, r.ID))

	list, err := s.ListAdSets(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 2, inner.adSetLists)
}
