package port

import (
	"context"

	"resto-ads/internal/core/domain"
)

// AdStatus is the delivery status set on an external object.
type AdStatus string

const (
	StatusActive AdStatus = "ACTIVE"
	StatusPaused AdStatus = "PAUSED"
)

// CreateAdSetRequest describes a new external ad set.
type CreateAdSetRequest struct {
	CampaignID  string
	Name        string
	Targeting   domain.Targeting
	DailyBudget int64
	// Currency is the ISO code DailyBudget is expressed in. When set, the
	// ad account must bill in the same currency.
	Currency    string
	Beneficiary string
	PageID      string
}

// CreateCreativeRequest describes a creative built from an existing page
// post. DestinationURL and URLTags are optional.
type CreateCreativeRequest struct {
	PageID         string
	ExternalPostID string
	DestinationURL string
	URLTags        string
}

// AudienceEstimate is the reach range reported for a targeting spec.
type AudienceEstimate struct {
	LowerBound int64
	UpperBound int64
}

// AdPlatform is the outbound port to the advertising API. Every call is a
// single synchronous attempt; failures carry a *PlatformError when the
// platform answered with a structured error.
type AdPlatform interface {
	CreateCampaign(ctx context.Context, rid int64, slug string) (string, error)
	CreateAdSet(ctx context.Context, req CreateAdSetRequest) (string, error)
	CreateCreative(ctx context.Context, req CreateCreativeRequest) (string, error)
	CreateAd(ctx context.Context, adSetID, creativeID string, pk int64) (string, error)
	Rename(ctx context.Context, objectID, name string) error
	SetStatus(ctx context.Context, objectID string, status AdStatus) error
	Delete(ctx context.Context, objectID string) error
	EstimateAudience(ctx context.Context, t domain.Targeting) (*AudienceEstimate, error)
}
