package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/adapter/memory"
	"resto-ads/internal/config/configs"
	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
	"resto-ads/internal/core/port/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

// classifyFunc adapts a function to PostClassifier.
type classifyFunc func(ctx context.Context, content string) domain.Classification

func (f classifyFunc) Classify(ctx context.Context, content string) domain.Classification {
	return f(ctx, content)
}

// fixedCategory classifies every post as code, ending in a week.
func fixedCategory(code string) classifyFunc {
	return func(context.Context, string) domain.Classification {
		return domain.Classification{Category: code, PromotionEndDate: domain.Day(time.Now()).AddDate(0, 0, 7)}
	}
}

type fixture struct {
	store    *memory.Store
	locker   *memory.Locker
	platform *mocks.MockAdPlatform
	rest     *domain.Restaurant

	adSets        *AdSetUseCase
	opportunities *OpportunityUseCase
	promotions    *PromotionUseCase

	adSetSeq, creativeSeq, adSeq atomic.Int64
}

func newFixture(t *testing.T, capacity int, classifier PostClassifier) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.New(),
		locker:   memory.NewLocker(),
		platform: mocks.NewMockAdPlatform(t),
	}
	f.rest = &domain.Restaurant{
		Slug:             "bistro-nowak",
		Name:             "Bistro Nowak",
		Website:          "https://bistro.example.com/menu",
		Area:             domain.AreaMedium,
		DeliveryRadiusKm: 4,
		FacebookPageID:   "1029384756",
		MetaCampaignID:   ptr("cmp-1"),
		Location:         domain.Location{Lat: 52.2297, Lng: 21.0122, Address: "Marszałkowska 1"},
	}
	require.NoError(t, f.store.CreateRestaurant(context.Background(), f.rest))

	cfg := configs.AdSet{Capacity: capacity, DailyBudget: 1000, MinDailyBudget: 500, Currency: "PLN", LockWait: 5 * time.Second}
	logger := discardLogger()
	f.adSets = NewAdSetUseCase(f.store, f.platform, cfg, nil, logger)
	f.opportunities = NewOpportunityUseCase(f.store, f.locker, logger, cfg.LockWait)
	f.promotions = NewPromotionUseCase(f.store, f.platform, classifier, f.opportunities, f.adSets, f.locker, cfg, nil, logger)
	return f
}

// allowPlatform registers permissive platform expectations. Expectations
// registered before it take precedence.
func (f *fixture) allowPlatform() {
	f.platform.EXPECT().EstimateAudience(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.platform.EXPECT().CreateAdSet(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, port.CreateAdSetRequest) (string, error) {
			return fmt.Sprintf("as-%d", f.adSetSeq.Add(1)), nil
		}).Maybe()
	f.platform.EXPECT().CreateCreative(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, port.CreateCreativeRequest) (string, error) {
			return fmt.Sprintf("cr-%d", f.creativeSeq.Add(1)), nil
		}).Maybe()
	f.platform.EXPECT().CreateAd(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, string, string, int64) (string, error) {
			return fmt.Sprintf("ad-%d", f.adSeq.Add(1)), nil
		}).Maybe()
	f.platform.EXPECT().Rename(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.platform.EXPECT().SetStatus(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.platform.EXPECT().Delete(mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (f *fixture) promote(t *testing.T, postID string) *domain.Post {
	t.Helper()
	p, err := f.promotions.Promote(context.Background(), port.PromoteInput{
		RestaurantID:   f.rest.ID,
		ExternalPostID: postID,
		Content:        "Lunch dnia: pierogi ruskie 25 zł",
	})
	require.NoError(t, err)
	return p
}
