package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/adapter/memory"
	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
	"resto-ads/internal/core/port/mocks"
)

func TestSweepExpiresDuePosts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	now := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	today := domain.Day(now)

	add := func(postID, adID string, end time.Time) *domain.Post {
		p := &domain.Post{
			RestaurantID:     "r1",
			ExternalPostID:   postID,
			ExternalAdID:     ptr(adID),
			Content:          "x",
			CategoryCode:     domain.CategoryInfo,
			PromotionEndDate: &end,
			Status:           domain.PostActive,
		}
		require.NoError(t, store.CreatePost(ctx, p))
		return p
	}
	yesterday := add("1029384756_1", "ad-yesterday", today.AddDate(0, 0, -1))
	due := add("1029384756_2", "ad-today", today)
	future := add("1029384756_3", "ad-tomorrow", today.AddDate(0, 0, 1))

	platform := mocks.NewMockAdPlatform(t)
	platform.EXPECT().SetStatus(mock.Anything, "ad-yesterday", port.StatusPaused).Return(errors.New("rate limited")).Once()
	platform.EXPECT().SetStatus(mock.Anything, "ad-today", port.StatusPaused).Return(nil).Once()

	s := NewExpirationSweeper(store, platform, nil, discardLogger())
	s.now = func() time.Time { return now }

	res := s.Sweep(ctx)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "1029384756_1")

	status := func(p *domain.Post) domain.PostStatus {
		got, err := store.GetPost(ctx, p.ID)
		require.NoError(t, err)
		return got.Status
	}
	assert.Equal(t, domain.PostActive, status(yesterday))
	assert.Equal(t, domain.PostExpired, status(due))
	assert.Equal(t, domain.PostActive, status(future))

	// the failed one is picked up again by the next run
	platform.EXPECT().SetStatus(mock.Anything, "ad-yesterday", port.StatusPaused).Return(nil).Once()
	res = s.Sweep(ctx)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Success)
	assert.Empty(t, res.Errors)
}

func TestSweepSkipsPlatformWithoutAdID(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	end := domain.Day(time.Now()).AddDate(0, 0, -3)
	p := &domain.Post{RestaurantID: "r1", ExternalPostID: "1029384756_1", PromotionEndDate: &end, Status: domain.PostActive}
	require.NoError(t, store.CreatePost(ctx, p))

	s := NewExpirationSweeper(store, mocks.NewMockAdPlatform(t), nil, discardLogger())
	res := s.Sweep(ctx)
	assert.Equal(t, 1, res.Success)

	got, err := store.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostExpired, got.Status)
}

type brokenPosts struct {
	port.PostRepository
}

func (brokenPosts) ListDuePosts(context.Context, time.Time) ([]domain.Post, error) {
	return nil, errors.New("database is down")
}

func TestSweepReportsListingFailure(t *testing.T) {
	s := NewExpirationSweeper(brokenPosts{}, mocks.NewMockAdPlatform(t), nil, discardLogger())

	res := s.Sweep(context.Background())
	assert.Equal(t, 0, res.Total)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "job error: database is down", res.Errors[0])
}
