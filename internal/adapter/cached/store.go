// Package cached decorates a port.Store with read-through caching of the
// admin listings. Every write through the decorator invalidates the
// affected entities before returning. Capacity lookups are never cached.
package cached

import (
	"context"
	"log/slog"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

// Store wraps a port.Store. Methods that are not overridden go straight to
// the wrapped store.
type Store struct {
	port.Store
	cache  port.Cache
	logger *slog.Logger
}

var _ port.Store = (*Store)(nil)

func New(store port.Store, cache port.Cache, logger *slog.Logger) *Store {
	return &Store{Store: store, cache: cache, logger: logger}
}

func filterKey(id *string) string {
	if id == nil {
		return "all"
	}
	return *id
}

// read serves key from the cache or loads and stores it.
func read[T any](ctx context.Context, s *Store, entity port.Entity, key string, load func() (T, error)) (T, error) {
	var v T
	hit, err := s.cache.Get(ctx, entity, key, &v)
	if err != nil {
		s.logger.Warn("cache read", slog.String("entity", string(entity)), slog.Any("error", err))
	}
	if hit {
		return v, nil
	}
	v, err = load()
	if err != nil {
		return v, err
	}
	if err := s.cache.Set(ctx, entity, key, v); err != nil {
		s.logger.Warn("cache write", slog.String("entity", string(entity)), slog.Any("error", err))
	}
	return v, nil
}

func (s *Store) invalidate(ctx context.Context, entities ...port.Entity) {
	for _, e := range entities {
		if err := s.cache.Invalidate(ctx, e); err != nil {
			s.logger.Error("cache invalidation failed", slog.String("entity", string(e)), slog.Any("error", err))
		}
	}
}

// Reads

func (s *Store) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return read(ctx, s, port.EntityRestaurants, "all", func() ([]domain.Restaurant, error) {
		return s.Store.ListRestaurants(ctx)
	})
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.AdSetCategory, error) {
	return read(ctx, s, port.EntityCategories, "all", func() ([]domain.AdSetCategory, error) {
		return s.Store.ListCategories(ctx)
	})
}

func (s *Store) ListAdSets(ctx context.Context, restaurantID *string) ([]domain.AdSet, error) {
	return read(ctx, s, port.EntityAdSets, filterKey(restaurantID), func() ([]domain.AdSet, error) {
		return s.Store.ListAdSets(ctx, restaurantID)
	})
}

func (s *Store) ListPosts(ctx context.Context, restaurantID *string) ([]domain.Post, error) {
	return read(ctx, s, port.EntityPosts, filterKey(restaurantID), func() ([]domain.Post, error) {
		return s.Store.ListPosts(ctx, restaurantID)
	})
}

// Restaurant writes

func (s *Store) CreateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	defer s.invalidate(ctx, port.EntityRestaurants)
	return s.Store.CreateRestaurant(ctx, r)
}

func (s *Store) UpdateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	defer s.invalidate(ctx, port.EntityRestaurants)
	return s.Store.UpdateRestaurant(ctx, r)
}

func (s *Store) SetCampaignID(ctx context.Context, id, campaignID string) error {
	defer s.invalidate(ctx, port.EntityRestaurants)
	return s.Store.SetCampaignID(ctx, id, campaignID)
}

func (s *Store) DeleteRestaurant(ctx context.Context, id string) error {
	defer s.invalidate(ctx, port.EntityRestaurants, port.EntityAdSets, port.EntityPosts)
	return s.Store.DeleteRestaurant(ctx, id)
}

// Category writes

func (s *Store) UpdateCategoryTemplate(ctx context.Context, id string, tpl domain.TargetingTemplate) error {
	defer s.invalidate(ctx, port.EntityCategories)
	return s.Store.UpdateCategoryTemplate(ctx, id, tpl)
}

// Ad set writes

func (s *Store) CreateAdSet(ctx context.Context, a *domain.AdSet) error {
	defer s.invalidate(ctx, port.EntityAdSets)
	return s.Store.CreateAdSet(ctx, a)
}

func (s *Store) IncrementAdsCount(ctx context.Context, id string) (int, error) {
	defer s.invalidate(ctx, port.EntityAdSets)
	return s.Store.IncrementAdsCount(ctx, id)
}

func (s *Store) DeleteAdSet(ctx context.Context, id string) error {
	defer s.invalidate(ctx, port.EntityAdSets, port.EntityPosts)
	return s.Store.DeleteAdSet(ctx, id)
}

func (s *Store) DeleteOpportunity(ctx context.Context, id string) error {
	defer s.invalidate(ctx, port.EntityAdSets)
	return s.Store.DeleteOpportunity(ctx, id)
}

// Post writes

func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	defer s.invalidate(ctx, port.EntityPosts)
	return s.Store.CreatePost(ctx, p)
}

func (s *Store) UpdatePostStatus(ctx context.Context, id string, status domain.PostStatus) error {
	defer s.invalidate(ctx, port.EntityPosts)
	return s.Store.UpdatePostStatus(ctx, id, status)
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	defer s.invalidate(ctx, port.EntityPosts)
	return s.Store.DeletePost(ctx, id)
}

func (s *Store) DeletePostsByAdSet(ctx context.Context, adSetID string) (int, error) {
	defer s.invalidate(ctx, port.EntityPosts)
	return s.Store.DeletePostsByAdSet(ctx, adSetID)
}
