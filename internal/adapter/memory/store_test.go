package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

func seedRestaurant(t *testing.T, s *Store) *domain.Restaurant {
	t.Helper()
	r := &domain.Restaurant{Name: "Bistro", Slug: "bistro", FacebookPageID: "p1"}
	require.NoError(t, s.CreateRestaurant(context.Background(), r))
	return r
}

func TestCreateAdSetRejectsSameVersion(t *testing.T) {
	s := New()
	ctx := context.Background()
	r := seedRestaurant(t, s)
	pk := int64(1)
	a := domain.AdSet{RestaurantID: r.ID, CategoryID: "c1", OpportunityPK: &pk, Version: 1, Status: domain.AdSetActive}

	first := a
	require.NoError(t, s.CreateAdSet(ctx, &first))
	dup := a
	assert.ErrorIs(t, s.CreateAdSet(ctx, &dup), port.ErrConflict)

	// another event identifier is another partition
	ev := a
	ev.EventIdentifier = new(string)
	*ev.EventIdentifier = "walentynki-2026"
	require.NoError(t, s.CreateAdSet(ctx, &ev))

	latest, err := s.MaxAdSetVersion(ctx, domain.PartitionOf(a))
	require.NoError(t, err)
	assert.Equal(t, 1, latest)
}

func TestFindOpenAdSetSkipsFullAndPaused(t *testing.T) {
	s := New()
	ctx := context.Background()
	r := seedRestaurant(t, s)
	p := domain.Partition{RestaurantID: r.ID, CategoryID: "c1"}

	full := domain.AdSet{RestaurantID: r.ID, CategoryID: "c1", Version: 1, AdsCount: 2, Status: domain.AdSetActive}
	paused := domain.AdSet{RestaurantID: r.ID, CategoryID: "c1", Version: 2, Status: domain.AdSetPaused}
	require.NoError(t, s.CreateAdSet(ctx, &full))
	require.NoError(t, s.CreateAdSet(ctx, &paused))

	_, err := s.FindOpenAdSet(ctx, p, 2)
	assert.ErrorIs(t, err, port.ErrNotFound)

	open := domain.AdSet{RestaurantID: r.ID, CategoryID: "c1", Version: 3, Status: domain.AdSetActive}
	require.NoError(t, s.CreateAdSet(ctx, &open))
	got, err := s.FindOpenAdSet(ctx, p, 2)
	require.NoError(t, err)
	assert.Equal(t, open.ID, got.ID)

	n, err := s.IncrementAdsCount(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreatePostRejectsDuplicateExternalID(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := domain.Post{RestaurantID: "r", ExternalPostID: "1_2", Status: domain.PostActive}
	first := p
	require.NoError(t, s.CreatePost(ctx, &first))
	dup := p
	assert.ErrorIs(t, s.CreatePost(ctx, &dup), port.ErrConflict)
}

func TestListDuePosts(t *testing.T) {
	s := New()
	ctx := context.Background()
	today := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	add := func(id string, end time.Time, status domain.PostStatus) {
		p := &domain.Post{RestaurantID: "r", ExternalPostID: id, PromotionEndDate: &end, Status: status}
		require.NoError(t, s.CreatePost(ctx, p))
	}
	add("a", today.AddDate(0, 0, -1), domain.PostActive)
	add("b", today, domain.PostActive)
	add("c", today.AddDate(0, 0, 1), domain.PostActive)
	add("d", today.AddDate(0, 0, -5), domain.PostPaused)

	due, err := s.ListDuePosts(ctx, today.Add(15*time.Hour))
	require.NoError(t, err)
	var ids []string
	for _, p := range due {
		ids = append(ids, p.ExternalPostID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestOpportunityPKIsPerRestaurant(t *testing.T) {
	s := New()
	ctx := context.Background()
	r1, r2 := seedRestaurant(t, s), seedRestaurant(t, s)

	for _, rid := range []string{r1.ID, r1.ID, r2.ID} {
		o := &domain.Opportunity{RestaurantID: rid, OfferType: domain.OfferLunch, Status: domain.OpportunityActive}
		require.NoError(t, s.CreateOpportunity(ctx, o))
	}
	got, err := s.GetOpportunityByPK(ctx, r1.RID, 2)
	require.NoError(t, err)
	assert.Equal(t, r1.ID, got.RestaurantID)
	got, err = s.GetOpportunityByPK(ctx, r2.RID, 1)
	require.NoError(t, err)
	assert.Equal(t, r2.ID, got.RestaurantID)

	err = s.CreateOpportunity(ctx, &domain.Opportunity{RestaurantID: "missing"})
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestDeleteAdSetDetachesPostsAndDropsEvents(t *testing.T) {
	s := New()
	ctx := context.Background()
	r := seedRestaurant(t, s)
	a := &domain.AdSet{RestaurantID: r.ID, CategoryID: "c", Version: 1, Status: domain.AdSetActive}
	require.NoError(t, s.CreateAdSet(ctx, a))
	require.NoError(t, s.CreateEvent(ctx, &domain.Event{RestaurantID: r.ID, AdSetID: a.ID, Identifier: "x"}))
	p := &domain.Post{RestaurantID: r.ID, AdSetID: &a.ID, ExternalPostID: "1_1", Status: domain.PostActive}
	require.NoError(t, s.CreatePost(ctx, p))

	require.NoError(t, s.DeleteAdSet(ctx, a.ID))

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AdSetID)
	_, err = s.GetEvent(ctx, r.ID, "x")
	assert.ErrorIs(t, err, port.ErrNotFound)
}
