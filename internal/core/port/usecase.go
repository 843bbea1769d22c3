package port

import (
	"context"
	"encoding/json"
	"time"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/tracking"
)

// RestaurantInput carries the admin-editable fields of a restaurant.
type RestaurantInput struct {
	Name               string          `json:"name"`
	Website            string          `json:"website"`
	Area               domain.Area     `json:"area"`
	Fame               string          `json:"fame"`
	DeliveryRadiusKm   float64         `json:"delivery_radius_km"`
	FacebookPageID     string          `json:"facebook_page_id"`
	InstagramAccountID *string         `json:"instagram_account_id"`
	Location           domain.Location `json:"location"`
}

// RestaurantUseCase administers restaurants and their Meta campaign.
type RestaurantUseCase interface {
	Create(ctx context.Context, in RestaurantInput) (*domain.Restaurant, error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
	Update(ctx context.Context, id string, in RestaurantInput) (*domain.Restaurant, error)
	Delete(ctx context.Context, id string) error
	RetryCampaign(ctx context.Context, id string) (*domain.Restaurant, error)
}

// AdSetUseCase exposes ad set, category and event administration.
type AdSetUseCase interface {
	List(ctx context.Context, restaurantID *string) ([]domain.AdSet, error)
	Delete(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]domain.AdSetCategory, error)
	UpdateCategoryTemplate(ctx context.Context, id string, tpl domain.TargetingTemplate) (*domain.AdSetCategory, error)
	ListEvents(ctx context.Context, restaurantID *string) ([]domain.Event, error)
}

// PromoteInput is a request to promote one published post. RestaurantID
// wins over PageID when both are set.
type PromoteInput struct {
	RestaurantID   string          `json:"restaurant_id"`
	PageID         string          `json:"page_id"`
	ExternalPostID string          `json:"post_id"`
	Content        string          `json:"content"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// PromotionUseCase turns published posts into running ads. ref is either
// the local post id or the external post id.
type PromotionUseCase interface {
	Promote(ctx context.Context, in PromoteInput) (*domain.Post, error)
	Pause(ctx context.Context, ref string) (*domain.Post, error)
	Activate(ctx context.Context, ref string) (*domain.Post, error)
	Retry(ctx context.Context, ref string) (*domain.Post, error)
	Delete(ctx context.Context, ref string) error
	List(ctx context.Context, restaurantID *string) ([]domain.Post, error)
}

// OpportunityInput carries the admin-editable fields of an opportunity.
type OpportunityInput struct {
	RestaurantID string                   `json:"restaurant_id"`
	Name         string                   `json:"name"`
	Slug         string                   `json:"slug"`
	OfferType    domain.OfferType         `json:"offer_type"`
	Goal         string                   `json:"goal"`
	Status       domain.OpportunityStatus `json:"status"`
	StartDate    *time.Time               `json:"start_date"`
	EndDate      *time.Time               `json:"end_date"`
}

// OpportunityUseCase administers opportunities.
type OpportunityUseCase interface {
	List(ctx context.Context, rid *int64) ([]domain.Opportunity, error)
	Get(ctx context.Context, id string) (*domain.Opportunity, error)
	GetByPK(ctx context.Context, rid, pk int64) (*domain.Opportunity, error)
	Create(ctx context.Context, in OpportunityInput) (*domain.Opportunity, error)
	Update(ctx context.Context, id string, in OpportunityInput) (*domain.Opportunity, error)
	Delete(ctx context.Context, id string) error
}

// TrackingUseCase generates and inspects attribution links.
type TrackingUseCase interface {
	Generate(ctx context.Context, p tracking.Params, save bool) (tracking.Link, error)
	GenerateMeta(ctx context.Context, p tracking.Params, save bool) (tracking.Link, error)
	Parse(raw string) (tracking.Parsed, error)
	Validate(raw string) []string
	List(ctx context.Context, rid, pk *int64) ([]domain.TrackingLink, error)
	Platforms() []domain.Platform
}

// SweepResult summarises one expiration run.
type SweepResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// Sweeper expires posts whose promotion window has ended.
type Sweeper interface {
	Sweep(ctx context.Context) SweepResult
}
