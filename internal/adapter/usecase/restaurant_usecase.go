package usecase

import (
	"context"
	"log/slog"
	"strings"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

// RestaurantUseCase administers restaurants and their Meta campaign.
type RestaurantUseCase struct {
	store    port.Store
	platform port.AdPlatform
	logger   *slog.Logger
}

var _ port.RestaurantUseCase = (*RestaurantUseCase)(nil)

func NewRestaurantUseCase(store port.Store, platform port.AdPlatform, logger *slog.Logger) *RestaurantUseCase {
	return &RestaurantUseCase{store: store, platform: platform, logger: logger}
}

// Create stores the restaurant and then tries to open its campaign. A
// campaign failure is logged and the restaurant is returned without a
// campaign id; RetryCampaign attaches it later.
func (u *RestaurantUseCase) Create(ctx context.Context, in port.RestaurantInput) (*domain.Restaurant, error) {
	if err := validateRestaurant(in); err != nil {
		return nil, err
	}
	r := &domain.Restaurant{Slug: domain.Slugify(in.Name)}
	applyRestaurantInput(r, in)
	if err := u.store.CreateRestaurant(ctx, r); err != nil {
		return nil, err
	}
	u.logger.Info("restaurant created", slog.String("restaurant", r.Slug), slog.Int64("rid", r.RID))

	if err := u.attachCampaign(ctx, r); err != nil {
		u.logger.Warn("campaign not created, retry later",
			slog.String("restaurant", r.Slug),
			slog.Any("error", err),
		)
	}
	return r, nil
}

// RetryCampaign creates the campaign of a restaurant that has none.
func (u *RestaurantUseCase) RetryCampaign(ctx context.Context, id string) (*domain.Restaurant, error) {
	r, err := u.store.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.HasCampaign() {
		return r, nil
	}
	if err := u.attachCampaign(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (u *RestaurantUseCase) attachCampaign(ctx context.Context, r *domain.Restaurant) error {
	campaignID, err := u.platform.CreateCampaign(ctx, r.RID, r.Slug)
	if err != nil {
		return err
	}
	if err := u.store.SetCampaignID(ctx, r.ID, campaignID); err != nil {
		u.logger.Error("campaign orphaned in ad platform",
			slog.String("meta_campaign_id", campaignID),
			slog.String("restaurant", r.Slug),
			slog.Any("error", err),
		)
		return err
	}
	r.MetaCampaignID = &campaignID
	u.logger.Info("campaign attached", slog.String("restaurant", r.Slug), slog.String("meta_campaign_id", campaignID))
	return nil
}

func (u *RestaurantUseCase) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	return u.store.GetRestaurant(ctx, id)
}

func (u *RestaurantUseCase) List(ctx context.Context) ([]domain.Restaurant, error) {
	return u.store.ListRestaurants(ctx)
}

// Update replaces the editable fields. The slug and campaign are kept.
func (u *RestaurantUseCase) Update(ctx context.Context, id string, in port.RestaurantInput) (*domain.Restaurant, error) {
	if err := validateRestaurant(in); err != nil {
		return nil, err
	}
	r, err := u.store.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRestaurantInput(r, in)
	if err := u.store.UpdateRestaurant(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes the restaurant's ad sets and campaign from the ad
// platform (best effort) and then every local row of the restaurant.
func (u *RestaurantUseCase) Delete(ctx context.Context, id string) error {
	r, err := u.store.GetRestaurant(ctx, id)
	if err != nil {
		return err
	}
	adSets, err := u.store.ListAdSets(ctx, &r.ID)
	if err != nil {
		return err
	}
	for _, a := range adSets {
		if a.MetaAdSetID == "" {
			continue
		}
		if err := u.platform.Delete(ctx, a.MetaAdSetID); err != nil {
			u.logger.Warn("delete ad set in ad platform", slog.String("meta_ad_set_id", a.MetaAdSetID), slog.Any("error", err))
		}
	}
	if r.HasCampaign() {
		if err := u.platform.Delete(ctx, *r.MetaCampaignID); err != nil {
			u.logger.Warn("delete campaign in ad platform", slog.String("meta_campaign_id", *r.MetaCampaignID), slog.Any("error", err))
		}
	}
	if err := u.store.DeleteRestaurant(ctx, id); err != nil {
		return err
	}
	u.logger.Info("restaurant deleted", slog.String("restaurant", r.Slug), slog.Int("ad_sets", len(adSets)))
	return nil
}

func validateRestaurant(in port.RestaurantInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return port.Validationf("name is required")
	}
	switch in.Area {
	case "", domain.AreaSmall, domain.AreaMedium, domain.AreaLarge:
	default:
		return port.Validationf("area must be S-CITY, M-CITY or L-CITY")
	}
	if in.DeliveryRadiusKm < 0 {
		return port.Validationf("delivery_radius_km must not be negative")
	}
	return nil
}

func applyRestaurantInput(r *domain.Restaurant, in port.RestaurantInput) {
	r.Name = strings.TrimSpace(in.Name)
	r.Website = in.Website
	r.Area = in.Area
	r.Fame = in.Fame
	r.DeliveryRadiusKm = in.DeliveryRadiusKm
	r.FacebookPageID = in.FacebookPageID
	r.InstagramAccountID = in.InstagramAccountID
	r.Location = in.Location
}
