package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"resto-ads/internal/config/configs"
	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
	"resto-ads/internal/metrics"
)

// maxResolveAttempts bounds how often Resolve re-reads a partition after
// losing a version race to a concurrent creator.
const maxResolveAttempts = 3

// AdSetUseCase finds or creates the ad set a new ad is attached to and
// administers ad sets, categories and events.
type AdSetUseCase struct {
	store    port.Store
	platform port.AdPlatform
	cfg      configs.AdSet
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

var _ port.AdSetUseCase = (*AdSetUseCase)(nil)

// NewAdSetUseCase creates the usecase. m may be nil.
func NewAdSetUseCase(store port.Store, platform port.AdPlatform, cfg configs.AdSet, m *metrics.Metrics, logger *slog.Logger) *AdSetUseCase {
	return &AdSetUseCase{store: store, platform: platform, cfg: cfg, metrics: m, logger: logger}
}

// Partition resolves the category code and returns the partition an ad
// for it belongs to. The event identifier is dropped for non-event
// categories; opp may be nil for legacy ad sets.
func (u *AdSetUseCase) Partition(ctx context.Context, r *domain.Restaurant, opp *domain.Opportunity, code string, eventID *string) (domain.Partition, *domain.AdSetCategory, error) {
	cat, err := u.store.GetCategoryByCode(ctx, code)
	if errors.Is(err, port.ErrNotFound) {
		return domain.Partition{}, nil, port.Configurationf("unknown ad set category %q", code)
	}
	if err != nil {
		return domain.Partition{}, nil, fmt.Errorf("get category %s: %w", code, err)
	}
	p := domain.Partition{RestaurantID: r.ID, CategoryID: cat.ID}
	if cat.IsEventType && eventID != nil && *eventID != "" {
		p.EventIdentifier = eventID
	}
	if opp != nil {
		pk := opp.PK
		p.OpportunityPK = &pk
	}
	return p, cat, nil
}

// Resolve returns an open ad set of the partition, creating the next
// version when none is open. The open-set lookup always reads the store
// directly.
func (u *AdSetUseCase) Resolve(ctx context.Context, r *domain.Restaurant, opp *domain.Opportunity, code string, eventID *string) (*domain.AdSet, error) {
	p, cat, err := u.Partition(ctx, r, opp, code, eventID)
	if err != nil {
		return nil, err
	}
	a, _, err := u.ResolveIn(ctx, r, opp, cat, p)
	return a, err
}

// ResolveIn is Resolve for an already computed partition. Callers that
// serialize on the partition key use it to avoid resolving it twice. The
// flag is true when the ad set was created by this call.
func (u *AdSetUseCase) ResolveIn(ctx context.Context, r *domain.Restaurant, opp *domain.Opportunity, cat *domain.AdSetCategory, p domain.Partition) (*domain.AdSet, bool, error) {
	for attempt := 1; ; attempt++ {
		open, err := u.store.FindOpenAdSet(ctx, p, u.cfg.Capacity)
		if err == nil {
			u.logger.Debug("using existing ad set", slog.String("ad_set", open.Name), slog.Int("ads_count", open.AdsCount))
			return open, false, nil
		}
		if !errors.Is(err, port.ErrNotFound) {
			return nil, false, fmt.Errorf("find open ad set: %w", err)
		}

		a, err := u.create(ctx, r, opp, cat, p)
		if errors.Is(err, port.ErrConflict) && attempt < maxResolveAttempts {
			u.logger.Warn("ad set version taken concurrently, retrying",
				slog.String("partition", p.Key()),
				slog.Int("attempt", attempt),
			)
			continue
		}
		return a, err == nil, err
	}
}

func (u *AdSetUseCase) create(ctx context.Context, r *domain.Restaurant, opp *domain.Opportunity, cat *domain.AdSetCategory, p domain.Partition) (*domain.AdSet, error) {
	if !r.Location.IsSet() {
		return nil, port.Configurationf("restaurant %s has no location configured", r.Name)
	}
	if !r.HasCampaign() {
		return nil, port.Validationf("restaurant %s has no Meta campaign", r.Name)
	}

	maxVersion, err := u.store.MaxAdSetVersion(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("read ad set version: %w", err)
	}
	version := maxVersion + 1

	radius := r.Area.RadiusKm()
	if cat.RequiresDelivery && r.DeliveryRadiusKm > 0 {
		radius = r.DeliveryRadiusKm
	}
	targeting := domain.BuildTargeting(cat.TargetingTemplate, r.Location, radius)
	name := domain.AdSetName(p.OpportunityPK, r.Slug, cat.Code, version)

	if est, err := u.platform.EstimateAudience(ctx, targeting); err != nil {
		u.logger.Warn("audience estimate unavailable", slog.String("ad_set", name), slog.Any("error", err))
	} else if est != nil {
		u.logger.Info("audience estimate",
			slog.String("ad_set", name),
			slog.Int64("lower_bound", est.LowerBound),
			slog.Int64("upper_bound", est.UpperBound),
		)
	}

	externalID, err := u.platform.CreateAdSet(ctx, port.CreateAdSetRequest{
		CampaignID:  *r.MetaCampaignID,
		Name:        name,
		Targeting:   targeting,
		DailyBudget: u.cfg.Budget(),
		Currency:    u.cfg.Currency,
		Beneficiary: r.Name,
		PageID:      r.FacebookPageID,
	})
	if err != nil {
		return nil, fmt.Errorf("create ad set %s in ad platform: %w", name, err)
	}
	u.metrics.AdSetCreated(cat.Code)

	a := &domain.AdSet{
		RestaurantID:    r.ID,
		CategoryID:      cat.ID,
		CategoryCode:    cat.Code,
		OpportunityPK:   p.OpportunityPK,
		MetaAdSetID:     externalID,
		Name:            name,
		Version:         version,
		AdsCount:        0,
		Status:          domain.AdSetActive,
		EventIdentifier: p.EventIdentifier,
	}
	if opp != nil {
		a.OpportunityID = &opp.ID
	}
	err = u.store.CreateAdSet(ctx, a)
	if errors.Is(err, port.ErrConflict) {
		// lost the version to a concurrent creator, drop our external copy
		if derr := u.platform.Delete(ctx, externalID); derr != nil {
			u.logger.Warn("delete duplicate ad set", slog.String("meta_ad_set_id", externalID), slog.Any("error", derr))
		}
		return nil, fmt.Errorf("persist ad set %s: %w", name, err)
	}
	if err != nil {
		u.logger.Error("ad set orphaned in ad platform",
			slog.String("meta_ad_set_id", externalID),
			slog.String("ad_set", name),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: ad set %s (%s): %v", port.ErrNotPersisted, name, externalID, err)
	}

	u.logger.Info("ad set created",
		slog.String("ad_set", name),
		slog.String("meta_ad_set_id", externalID),
		slog.Float64("radius_km", radius),
		slog.Int64("daily_budget", u.cfg.Budget()),
		slog.String("currency", u.cfg.Currency),
	)
	return a, nil
}

// Delete removes the ad set from the ad platform (best effort), then its
// posts and the local row.
func (u *AdSetUseCase) Delete(ctx context.Context, id string) error {
	a, err := u.store.GetAdSet(ctx, id)
	if err != nil {
		return err
	}
	if a.MetaAdSetID != "" {
		if err := u.platform.Delete(ctx, a.MetaAdSetID); err != nil {
			u.logger.Warn("delete ad set in ad platform", slog.String("meta_ad_set_id", a.MetaAdSetID), slog.Any("error", err))
		}
	}
	n, err := u.store.DeletePostsByAdSet(ctx, id)
	if err != nil {
		return fmt.Errorf("delete posts of ad set: %w", err)
	}
	if err := u.store.DeleteAdSet(ctx, id); err != nil {
		return err
	}
	u.logger.Info("ad set deleted", slog.String("ad_set", a.Name), slog.Int("posts", n))
	return nil
}

func (u *AdSetUseCase) List(ctx context.Context, restaurantID *string) ([]domain.AdSet, error) {
	return u.store.ListAdSets(ctx, restaurantID)
}

func (u *AdSetUseCase) ListCategories(ctx context.Context) ([]domain.AdSetCategory, error) {
	return u.store.ListCategories(ctx)
}

// UpdateCategoryTemplate replaces the targeting template of a category.
// Existing ad sets keep the audience they were created with.
func (u *AdSetUseCase) UpdateCategoryTemplate(ctx context.Context, id string, tpl domain.TargetingTemplate) (*domain.AdSetCategory, error) {
	if err := tpl.Validate(); err != nil {
		return nil, port.Validationf("%s", err.Error())
	}
	if err := u.store.UpdateCategoryTemplate(ctx, id, tpl); err != nil {
		return nil, err
	}
	return u.store.GetCategory(ctx, id)
}

func (u *AdSetUseCase) ListEvents(ctx context.Context, restaurantID *string) ([]domain.Event, error) {
	return u.store.ListEvents(ctx, restaurantID)
}
