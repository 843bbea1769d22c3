package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resto-ads/internal/config/configs"
	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
	"resto-ads/internal/core/tracking"
	"resto-ads/internal/metrics"
)

// minPostIDLength rejects obviously truncated external post ids.
const minPostIDLength = 5

// PostClassifier assigns a category to post text. It never fails.
type PostClassifier interface {
	Classify(ctx context.Context, content string) domain.Classification
}

// OpportunityResolver returns the active opportunity of an offer type.
type OpportunityResolver interface {
	GetOrCreate(ctx context.Context, r *domain.Restaurant, offer domain.OfferType) (*domain.Opportunity, error)
}

// AdSetResolver returns an open ad set of a partition and whether it was
// created by this call.
type AdSetResolver interface {
	Partition(ctx context.Context, r *domain.Restaurant, opp *domain.Opportunity, code string, eventID *string) (domain.Partition, *domain.AdSetCategory, error)
	ResolveIn(ctx context.Context, r *domain.Restaurant, opp *domain.Opportunity, cat *domain.AdSetCategory, p domain.Partition) (*domain.AdSet, bool, error)
}

// PromotionUseCase turns a published post into a running ad.
//
// The post row is written once, as ACTIVE, after every external object
// exists. A failed promotion therefore leaves no local row behind, only
// the external objects named in the returned *port.StepError.
type PromotionUseCase struct {
	store         port.Store
	platform      port.AdPlatform
	classifier    PostClassifier
	opportunities OpportunityResolver
	adSets        AdSetResolver
	locker        port.Locker
	cfg           configs.AdSet
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

var _ port.PromotionUseCase = (*PromotionUseCase)(nil)

// NewPromotionUseCase wires the orchestrator. m may be nil.
func NewPromotionUseCase(
	store port.Store,
	platform port.AdPlatform,
	classifier PostClassifier,
	opportunities OpportunityResolver,
	adSets AdSetResolver,
	locker port.Locker,
	cfg configs.AdSet,
	m *metrics.Metrics,
	logger *slog.Logger,
) *PromotionUseCase {
	return &PromotionUseCase{
		store:         store,
		platform:      platform,
		classifier:    classifier,
		opportunities: opportunities,
		adSets:        adSets,
		locker:        locker,
		cfg:           cfg,
		metrics:       m,
		logger:        logger,
	}
}

// Promote classifies the post, resolves its opportunity and ad set and
// creates the creative and ad for it.
func (u *PromotionUseCase) Promote(ctx context.Context, in port.PromoteInput) (*domain.Post, error) {
	start := time.Now()
	post, err := u.promote(ctx, in)
	if err != nil {
		var stepErr *port.StepError
		switch {
		case errors.As(err, &stepErr):
			u.metrics.Promotion("failed")
			u.metrics.StepFailed(string(stepErr.Step))
			u.logger.Error("post promotion failed",
				slog.String("post_id", in.ExternalPostID),
				slog.String("step", string(stepErr.Step)),
				slog.Any("error", err),
			)
		default:
			u.metrics.Promotion("rejected")
			u.logger.Warn("post promotion rejected", slog.String("post_id", in.ExternalPostID), slog.Any("error", err))
		}
		return nil, err
	}
	u.metrics.Promotion("success")
	u.logger.Info("post promoted",
		slog.String("post_id", post.ExternalPostID),
		slog.String("category", post.CategoryCode),
		slog.Duration("took", time.Since(start)),
	)
	return post, nil
}

func (u *PromotionUseCase) promote(ctx context.Context, in port.PromoteInput) (*domain.Post, error) {
	r, err := u.restaurantFor(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := checkPreconditions(r, in); err != nil {
		return nil, err
	}
	postID := strings.TrimSpace(in.ExternalPostID)

	unlockPost, err := u.locker.TryLock(ctx, "post:"+postID)
	if errors.Is(err, port.ErrLocked) {
		return nil, port.ErrPromotionInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("lock post %s: %w", postID, err)
	}
	defer unlockPost()

	existing, err := u.store.GetPostByExternalID(ctx, postID)
	switch {
	case errors.Is(err, port.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("look up post %s: %w", postID, err)
	case existing.Status == domain.PostActive:
		return nil, port.ErrAlreadyPromoted
	default:
		u.logger.Info("discarding stale post before promotion",
			slog.String("post_id", postID),
			slog.String("status", string(existing.Status)),
		)
		if err := u.discard(ctx, existing); err != nil {
			return nil, err
		}
	}

	// 1. classify
	c := u.classifier.Classify(ctx, in.Content)

	// 2. opportunity
	opp, err := u.opportunities.GetOrCreate(ctx, r, domain.OfferTypeOf(c.Category))
	if err != nil {
		return nil, &port.StepError{Step: port.StepOpportunity, Err: err}
	}

	// 3. ad set, held until the new ad is counted
	p, cat, err := u.adSets.Partition(ctx, r, opp, c.Category, c.EventIdentifier)
	if err != nil {
		return nil, &port.StepError{Step: port.StepAdSet, Err: err}
	}
	unlockPartition, err := u.locker.Lock(ctx, "adset:"+p.Key(), u.cfg.LockWait)
	if err != nil {
		return nil, &port.StepError{Step: port.StepAdSet, Err: fmt.Errorf("wait for ad set partition: %w", err)}
	}
	defer unlockPartition()

	adSet, created, err := u.adSets.ResolveIn(ctx, r, opp, cat, p)
	if err != nil {
		return nil, &port.StepError{Step: port.StepAdSet, Err: err}
	}
	leftovers := map[string]string{}
	if created {
		leftovers["ad_set"] = adSet.MetaAdSetID
	}

	// 4. tracking parameters
	var (
		link    *tracking.Link
		dest    string
		urlTags string
	)
	if r.Website == "" {
		u.logger.Warn("restaurant has no website, ad created without tracking link", slog.String("restaurant", r.Slug))
	} else {
		l, err := tracking.BuildMeta(tracking.Params{
			RID:             r.RID,
			PK:              opp.PK,
			DestinationURL:  r.Website,
			OpportunitySlug: opp.Slug,
			CategoryCode:    cat.Code,
			Version:         adSet.Version,
		})
		if err != nil {
			u.logger.Warn("restaurant website is not a valid url, ad created without tracking link",
				slog.String("restaurant", r.Slug),
				slog.Any("error", err),
			)
		} else {
			link, dest, urlTags = &l, r.Website, tracking.URLTags(l.Components)
		}
	}

	// 5. creative
	creativeID, err := u.platform.CreateCreative(ctx, port.CreateCreativeRequest{
		PageID:         r.FacebookPageID,
		ExternalPostID: postID,
		DestinationURL: dest,
		URLTags:        urlTags,
	})
	if err != nil {
		return nil, &port.StepError{Step: port.StepCreative, Err: explainCreativeError(postID, err), Leftovers: leftovers}
	}
	leftovers["creative"] = creativeID

	// 6. ad
	adID, err := u.platform.CreateAd(ctx, adSet.MetaAdSetID, creativeID, opp.PK)
	if err != nil {
		return nil, &port.StepError{Step: port.StepAd, Err: err, Leftovers: leftovers}
	}
	leftovers["ad"] = adID
	if err := u.platform.Rename(ctx, adID, domain.AdName(opp.PK, adID)); err != nil {
		u.logger.Warn("rename ad", slog.String("meta_ad_id", adID), slog.Any("error", err))
	}

	// 7. event
	if cat.IsEventType && p.EventIdentifier != nil && c.EventDate != nil {
		u.ensureEvent(ctx, r, adSet, *p.EventIdentifier, *c.EventDate)
	}

	// 8. capacity
	count, err := u.store.IncrementAdsCount(ctx, adSet.ID)
	if err != nil {
		return nil, &port.StepError{Step: port.StepCount, Err: err, Leftovers: leftovers}
	}
	adSet.AdsCount = count

	// 9. post
	end := c.PromotionEndDate
	post := &domain.Post{
		RestaurantID:     r.ID,
		AdSetID:          &adSet.ID,
		OpportunityID:    &opp.ID,
		OpportunityPK:    &opp.PK,
		ExternalPostID:   postID,
		ExternalAdID:     &adID,
		CreativeID:       &creativeID,
		Content:          in.Content,
		CategoryCode:     cat.Code,
		EventDate:        c.EventDate,
		PromotionEndDate: &end,
		Status:           domain.PostActive,
		Payload:          in.Payload,
	}
	if err := u.store.CreatePost(ctx, post); err != nil {
		return nil, &port.StepError{Step: port.StepPersist, Err: err, Leftovers: leftovers}
	}

	// 10. audit trail
	if link != nil {
		u.saveTrackingLink(ctx, r, opp, post, *link, adID)
	}
	return post, nil
}

func (u *PromotionUseCase) restaurantFor(ctx context.Context, in port.PromoteInput) (*domain.Restaurant, error) {
	switch {
	case in.RestaurantID != "":
		r, err := u.store.GetRestaurant(ctx, in.RestaurantID)
		if err != nil {
			return nil, fmt.Errorf("restaurant %s: %w", in.RestaurantID, err)
		}
		return r, nil
	case in.PageID != "":
		r, err := u.store.GetRestaurantByPageID(ctx, in.PageID)
		if errors.Is(err, port.ErrNotFound) {
			return nil, port.Validationf("no restaurant is linked to page %s", in.PageID)
		}
		if err != nil {
			return nil, fmt.Errorf("restaurant for page %s: %w", in.PageID, err)
		}
		return r, nil
	default:
		return nil, port.Validationf("restaurant_id or page_id is required")
	}
}

func checkPreconditions(r *domain.Restaurant, in port.PromoteInput) error {
	if len(strings.TrimSpace(in.ExternalPostID)) < minPostIDLength {
		return port.Validationf("post id %q is too short", in.ExternalPostID)
	}
	if strings.TrimSpace(in.Content) == "" {
		return port.Validationf("post content is empty")
	}
	if r.FacebookPageID == "" {
		return port.Validationf("restaurant %s has no facebook_page_id", r.Name)
	}
	if !r.HasCampaign() {
		return port.Validationf("restaurant %s has no Meta campaign, retry campaign creation first", r.Name)
	}
	return nil
}

// explainCreativeError rewrites the platform refusing to boost a post into
// an actionable message.
func explainCreativeError(postID string, err error) error {
	var pe *port.PlatformError
	if !errors.As(err, &pe) || !isUnboostable(pe) {
		return err
	}
	return fmt.Errorf(`%w: post %s cannot be promoted (%s). Check that:
  - the post id is valid and the post still exists
  - the post belongs to the restaurant's Facebook page
  - the post was not deleted or hidden
  - the post contains no copyrighted content (music, video)
  - the post is published, not a draft or scheduled post`, port.ErrPlatformRejected, postID, pe.Error())
}

// subcodeMissingObject is Graph API's "object does not exist, cannot be
// loaded due to missing permissions, or does not support this operation".
const subcodeMissingObject = 33

var unboostableHints = []string{
	"object_story_id",
	"unsupported post request",
	"cannot be boosted",
	"can't be boosted",
	"not eligible for boosting",
}

// isUnboostable reports whether the platform refused the post itself. Other
// invalid parameters (url_tags, call to action) pass through unchanged.
func isUnboostable(pe *port.PlatformError) bool {
	if pe.Code == 100 && pe.Subcode == subcodeMissingObject {
		return true
	}
	msg := strings.ToLower(pe.Message + " " + pe.UserMessage)
	for _, hint := range unboostableHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

func (u *PromotionUseCase) ensureEvent(ctx context.Context, r *domain.Restaurant, adSet *domain.AdSet, identifier string, date time.Time) {
	_, err := u.store.GetEvent(ctx, r.ID, identifier)
	if err == nil {
		return
	}
	if !errors.Is(err, port.ErrNotFound) {
		u.logger.Warn("look up event", slog.String("event", identifier), slog.Any("error", err))
		return
	}
	e := &domain.Event{
		RestaurantID: r.ID,
		AdSetID:      adSet.ID,
		Identifier:   identifier,
		Name:         domain.EventName(identifier),
		EventDate:    domain.Day(date),
	}
	if err := u.store.CreateEvent(ctx, e); err != nil && !errors.Is(err, port.ErrConflict) {
		u.logger.Warn("create event", slog.String("event", identifier), slog.Any("error", err))
	}
}

func (u *PromotionUseCase) saveTrackingLink(ctx context.Context, r *domain.Restaurant, opp *domain.Opportunity, post *domain.Post, link tracking.Link, adID string) {
	c := link.Components
	row := &domain.TrackingLink{
		RID:            r.RID,
		PlatformID:     tracking.PlatformMeta,
		PK:             opp.PK,
		PlacementID:    adID,
		PostID:         &post.ID,
		DestinationURL: r.Website,
		FinalURL:       strings.ReplaceAll(link.FinalURL, tracking.MetaAdMacro, adID),
		CParam:         strings.ReplaceAll(c.C, tracking.MetaAdMacro, adID),
		UTMSource:      c.UTMSource,
		UTMMedium:      c.UTMMedium,
		UTMCampaign:    c.UTMCampaign,
		UTMContent:     c.UTMContent,
	}
	if err := u.store.CreateTrackingLink(ctx, row); err != nil {
		u.logger.Warn("save tracking link", slog.String("post_id", post.ExternalPostID), slog.Any("error", err))
	}
}

// find resolves ref as a local id first, then as an external post id.
func (u *PromotionUseCase) find(ctx context.Context, ref string) (*domain.Post, error) {
	p, err := u.store.GetPost(ctx, ref)
	if err == nil || !errors.Is(err, port.ErrNotFound) {
		return p, err
	}
	return u.store.GetPostByExternalID(ctx, ref)
}

// discard removes the external ad (best effort) and the local row.
func (u *PromotionUseCase) discard(ctx context.Context, p *domain.Post) error {
	if p.ExternalAdID != nil && *p.ExternalAdID != "" {
		if err := u.platform.Delete(ctx, *p.ExternalAdID); err != nil {
			u.logger.Warn("delete ad in ad platform", slog.String("meta_ad_id", *p.ExternalAdID), slog.Any("error", err))
		}
	}
	if err := u.store.DeletePost(ctx, p.ID); err != nil && !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("delete post %s: %w", p.ExternalPostID, err)
	}
	return nil
}

func (u *PromotionUseCase) Pause(ctx context.Context, ref string) (*domain.Post, error) {
	return u.setStatus(ctx, ref, port.StatusPaused, domain.PostPaused)
}

func (u *PromotionUseCase) Activate(ctx context.Context, ref string) (*domain.Post, error) {
	return u.setStatus(ctx, ref, port.StatusActive, domain.PostActive)
}

func (u *PromotionUseCase) setStatus(ctx context.Context, ref string, external port.AdStatus, local domain.PostStatus) (*domain.Post, error) {
	p, err := u.find(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p.ExternalAdID != nil && *p.ExternalAdID != "" {
		if err := u.platform.SetStatus(ctx, *p.ExternalAdID, external); err != nil {
			return nil, fmt.Errorf("set ad %s to %s: %w", *p.ExternalAdID, external, err)
		}
	}
	if err := u.store.UpdatePostStatus(ctx, p.ID, local); err != nil {
		return nil, err
	}
	p.Status = local
	u.logger.Info("post status changed", slog.String("post_id", p.ExternalPostID), slog.String("status", string(local)))
	return p, nil
}

// Retry drops the stored post and promotes it again from its stored
// content and payload.
func (u *PromotionUseCase) Retry(ctx context.Context, ref string) (*domain.Post, error) {
	p, err := u.find(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := u.discard(ctx, p); err != nil {
		return nil, err
	}
	return u.Promote(ctx, port.PromoteInput{
		RestaurantID:   p.RestaurantID,
		ExternalPostID: p.ExternalPostID,
		Content:        p.Content,
		Payload:        p.Payload,
	})
}

func (u *PromotionUseCase) Delete(ctx context.Context, ref string) error {
	p, err := u.find(ctx, ref)
	if err != nil {
		return err
	}
	if err := u.discard(ctx, p); err != nil {
		return err
	}
	u.logger.Info("post deleted", slog.String("post_id", p.ExternalPostID))
	return nil
}

func (u *PromotionUseCase) List(ctx context.Context, restaurantID *string) ([]domain.Post, error) {
	return u.store.ListPosts(ctx, restaurantID)
}
