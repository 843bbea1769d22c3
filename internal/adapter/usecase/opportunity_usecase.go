package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

// OpportunityUseCase resolves the opportunity a promoted post belongs to
// and administers opportunities.
type OpportunityUseCase struct {
	repo     port.OpportunityRepository
	locker   port.Locker
	logger   *slog.Logger
	lockWait time.Duration
	now      func() time.Time
}

var _ port.OpportunityUseCase = (*OpportunityUseCase)(nil)

// NewOpportunityUseCase creates the usecase. lockWait bounds how long
// GetOrCreate waits for a concurrent creation of the same opportunity.
func NewOpportunityUseCase(repo port.OpportunityRepository, locker port.Locker, logger *slog.Logger, lockWait time.Duration) *OpportunityUseCase {
	return &OpportunityUseCase{repo: repo, locker: locker, logger: logger, lockWait: lockWait, now: time.Now}
}

// GetOrCreate returns the most recent active opportunity of the restaurant
// for the offer type, creating one when none exists.
func (u *OpportunityUseCase) GetOrCreate(ctx context.Context, r *domain.Restaurant, offer domain.OfferType) (*domain.Opportunity, error) {
	if o, err := u.findActive(ctx, r.ID, offer); o != nil || err != nil {
		return o, err
	}

	unlock, err := u.locker.Lock(ctx, fmt.Sprintf("opportunity:%s:%s", r.ID, offer), u.lockWait)
	if err != nil {
		return nil, fmt.Errorf("lock opportunity: %w", err)
	}
	defer unlock()

	// another request may have created it while we waited
	if o, err := u.findActive(ctx, r.ID, offer); o != nil || err != nil {
		return o, err
	}

	start := domain.Day(u.now())
	o := &domain.Opportunity{
		RestaurantID: r.ID,
		Name:         fmt.Sprintf("%s %s", r.Name, offer),
		Slug:         string(offer),
		OfferType:    offer,
		Goal:         domain.DefaultGoal,
		Status:       domain.OpportunityActive,
		StartDate:    &start,
	}
	if err := u.repo.CreateOpportunity(ctx, o); err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	u.logger.Info("opportunity created",
		slog.String("restaurant_id", r.ID),
		slog.Int64("pk", o.PK),
		slog.String("offer_type", string(offer)),
	)
	return o, nil
}

func (u *OpportunityUseCase) findActive(ctx context.Context, restaurantID string, offer domain.OfferType) (*domain.Opportunity, error) {
	o, err := u.repo.FindActiveOpportunity(ctx, restaurantID, offer)
	if errors.Is(err, port.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find opportunity: %w", err)
	}
	return o, nil
}

func (u *OpportunityUseCase) List(ctx context.Context, rid *int64) ([]domain.Opportunity, error) {
	return u.repo.ListOpportunities(ctx, rid)
}

func (u *OpportunityUseCase) Get(ctx context.Context, id string) (*domain.Opportunity, error) {
	return u.repo.GetOpportunity(ctx, id)
}

func (u *OpportunityUseCase) GetByPK(ctx context.Context, rid, pk int64) (*domain.Opportunity, error) {
	return u.repo.GetOpportunityByPK(ctx, rid, pk)
}

// Create opens an opportunity explicitly. The pk is allocated by the store.
func (u *OpportunityUseCase) Create(ctx context.Context, in port.OpportunityInput) (*domain.Opportunity, error) {
	if in.RestaurantID == "" {
		return nil, port.Validationf("restaurant_id is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, port.Validationf("name is required")
	}
	o := &domain.Opportunity{
		RestaurantID: in.RestaurantID,
		Name:         in.Name,
		Slug:         in.Slug,
		OfferType:    in.OfferType,
		Goal:         in.Goal,
		Status:       in.Status,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	if o.OfferType == "" {
		o.OfferType = domain.OfferPromo
	}
	if o.Goal == "" {
		o.Goal = domain.DefaultGoal
	}
	if o.Status == "" {
		o.Status = domain.OpportunityActive
	}
	if o.Slug == "" {
		o.Slug = domain.Slugify(o.Name)
	}
	if err := validateOpportunity(o); err != nil {
		return nil, err
	}
	if err := u.repo.CreateOpportunity(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update changes the editable fields. Zero values keep the stored value;
// the pk never changes.
func (u *OpportunityUseCase) Update(ctx context.Context, id string, in port.OpportunityInput) (*domain.Opportunity, error) {
	o, err := u.repo.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		o.Name = in.Name
	}
	if in.Slug != "" {
		o.Slug = in.Slug
	}
	if in.OfferType != "" {
		o.OfferType = in.OfferType
	}
	if in.Goal != "" {
		o.Goal = in.Goal
	}
	if in.Status != "" {
		o.Status = in.Status
	}
	if in.StartDate != nil {
		o.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		o.EndDate = in.EndDate
	}
	if err := validateOpportunity(o); err != nil {
		return nil, err
	}
	if err := u.repo.UpdateOpportunity(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (u *OpportunityUseCase) Delete(ctx context.Context, id string) error {
	return u.repo.DeleteOpportunity(ctx, id)
}

func validateOpportunity(o *domain.Opportunity) error {
	if !o.OfferType.Valid() {
		return port.Validationf("unknown offer_type %q", o.OfferType)
	}
	if !o.Status.Valid() {
		return port.Validationf("unknown status %q", o.Status)
	}
	if o.StartDate != nil && o.EndDate != nil && o.EndDate.Before(*o.StartDate) {
		return port.Validationf("end_date is before start_date")
	}
	return nil
}
