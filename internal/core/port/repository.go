package port

import (
	"context"
	"time"

	"resto-ads/internal/core/domain"
)

// RestaurantRepository persists restaurants. DeleteRestaurant cascades to
// every row owned by the restaurant.
type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, r *domain.Restaurant) error
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	GetRestaurantByPageID(ctx context.Context, pageID string) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, r *domain.Restaurant) error
	SetCampaignID(ctx context.Context, id, campaignID string) error
	DeleteRestaurant(ctx context.Context, id string) error
}

// CategoryRepository reads the seeded category catalogue and persists
// template edits.
type CategoryRepository interface {
	GetCategory(ctx context.Context, id string) (*domain.AdSetCategory, error)
	GetCategoryByCode(ctx context.Context, code string) (*domain.AdSetCategory, error)
	ListCategories(ctx context.Context) ([]domain.AdSetCategory, error)
	UpdateCategoryTemplate(ctx context.Context, id string, tpl domain.TargetingTemplate) error
}

// OpportunityRepository persists opportunities. CreateOpportunity assigns
// o.PK from the restaurant's counter in the same atomic operation as the
// insert, so a pk is never reused or skipped.
type OpportunityRepository interface {
	CreateOpportunity(ctx context.Context, o *domain.Opportunity) error
	GetOpportunity(ctx context.Context, id string) (*domain.Opportunity, error)
	GetOpportunityByPK(ctx context.Context, rid, pk int64) (*domain.Opportunity, error)
	// FindActiveOpportunity returns the most recently created active
	// opportunity of the offer type, or ErrNotFound.
	FindActiveOpportunity(ctx context.Context, restaurantID string, offer domain.OfferType) (*domain.Opportunity, error)
	ListOpportunities(ctx context.Context, rid *int64) ([]domain.Opportunity, error)
	UpdateOpportunity(ctx context.Context, o *domain.Opportunity) error
	DeleteOpportunity(ctx context.Context, id string) error
}

// AdSetRepository persists ad sets. FindOpenAdSet must read fresh state.
type AdSetRepository interface {
	// FindOpenAdSet returns the highest-version ACTIVE ad set of the
	// partition with fewer than capacity ads, or ErrNotFound.
	FindOpenAdSet(ctx context.Context, p domain.Partition, capacity int) (*domain.AdSet, error)
	// MaxAdSetVersion returns the highest version in the partition, 0 when
	// empty.
	MaxAdSetVersion(ctx context.Context, p domain.Partition) (int, error)
	// CreateAdSet inserts an ad set. It returns ErrConflict when the
	// partition already holds the same version.
	CreateAdSet(ctx context.Context, a *domain.AdSet) error
	GetAdSet(ctx context.Context, id string) (*domain.AdSet, error)
	ListAdSets(ctx context.Context, restaurantID *string) ([]domain.AdSet, error)
	// IncrementAdsCount adds one to ads_count in a single statement and
	// returns the new value.
	IncrementAdsCount(ctx context.Context, id string) (int, error)
	DeleteAdSet(ctx context.Context, id string) error
}

// PostRepository persists promoted posts. CreatePost returns ErrConflict
// when the external post id is already stored.
type PostRepository interface {
	CreatePost(ctx context.Context, p *domain.Post) error
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	GetPostByExternalID(ctx context.Context, externalPostID string) (*domain.Post, error)
	ListPosts(ctx context.Context, restaurantID *string) ([]domain.Post, error)
	// ListDuePosts returns ACTIVE posts whose promotion ends on or before day.
	ListDuePosts(ctx context.Context, day time.Time) ([]domain.Post, error)
	UpdatePostStatus(ctx context.Context, id string, status domain.PostStatus) error
	DeletePost(ctx context.Context, id string) error
	DeletePostsByAdSet(ctx context.Context, adSetID string) (int, error)
}

// EventRepository persists events. CreateEvent returns ErrConflict when the
// identifier already exists for the restaurant.
type EventRepository interface {
	GetEvent(ctx context.Context, restaurantID, identifier string) (*domain.Event, error)
	CreateEvent(ctx context.Context, e *domain.Event) error
	ListEvents(ctx context.Context, restaurantID *string) ([]domain.Event, error)
}

// TrackingLinkRepository stores generated attribution links.
type TrackingLinkRepository interface {
	CreateTrackingLink(ctx context.Context, l *domain.TrackingLink) error
	ListTrackingLinks(ctx context.Context, rid, pk *int64) ([]domain.TrackingLink, error)
}

// Store bundles every repository. Implementations must be
// concurrency-safe and enforce the uniqueness constraints documented on
// the individual methods.
type Store interface {
	RestaurantRepository
	CategoryRepository
	OpportunityRepository
	AdSetRepository
	PostRepository
	EventRepository
	TrackingLinkRepository
}
