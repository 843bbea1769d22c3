package usecase

import (
	"context"
	"errors"
	"log/slog"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
	"resto-ads/internal/core/tracking"
)

// TrackingUseCase generates attribution links and optionally records them.
type TrackingUseCase struct {
	repo   port.TrackingLinkRepository
	logger *slog.Logger
}

var _ port.TrackingUseCase = (*TrackingUseCase)(nil)

func NewTrackingUseCase(repo port.TrackingLinkRepository, logger *slog.Logger) *TrackingUseCase {
	return &TrackingUseCase{repo: repo, logger: logger}
}

func (u *TrackingUseCase) Generate(ctx context.Context, p tracking.Params, save bool) (tracking.Link, error) {
	return u.generate(ctx, p, save)
}

// GenerateMeta builds a Meta ads link whose placement is the ad id macro.
func (u *TrackingUseCase) GenerateMeta(ctx context.Context, p tracking.Params, save bool) (tracking.Link, error) {
	p.PlatformID, p.PlacementID = tracking.PlatformMeta, tracking.MetaAdMacro
	return u.generate(ctx, p, save)
}

func (u *TrackingUseCase) generate(ctx context.Context, p tracking.Params, save bool) (tracking.Link, error) {
	if p.RID <= 0 || p.PK <= 0 || p.PlatformID <= 0 {
		return tracking.Link{}, port.Validationf("rid, pi and pk are required")
	}
	if p.PlacementID == "" {
		return tracking.Link{}, port.Validationf("ps is required")
	}
	link, err := tracking.Build(p)
	if errors.Is(err, tracking.ErrInvalidURL) {
		return tracking.Link{}, port.Validationf("%s", err.Error())
	}
	if err != nil {
		return tracking.Link{}, err
	}
	if !save {
		return link, nil
	}

	c := link.Components
	row := &domain.TrackingLink{
		RID:            p.RID,
		PlatformID:     p.PlatformID,
		PK:             p.PK,
		PlacementID:    p.PlacementID,
		DestinationURL: p.DestinationURL,
		FinalURL:       link.FinalURL,
		CParam:         c.C,
		UTMSource:      c.UTMSource,
		UTMMedium:      c.UTMMedium,
		UTMCampaign:    c.UTMCampaign,
		UTMContent:     c.UTMContent,
	}
	if err := u.repo.CreateTrackingLink(ctx, row); err != nil {
		return tracking.Link{}, err
	}
	u.logger.Info("tracking link saved", slog.Int64("rid", p.RID), slog.Int64("pk", p.PK), slog.String("url", link.FinalURL))
	return link, nil
}

func (u *TrackingUseCase) Parse(raw string) (tracking.Parsed, error) {
	p, err := tracking.Parse(raw)
	if err != nil {
		return p, port.Validationf("%s", err.Error())
	}
	return p, nil
}

func (u *TrackingUseCase) Validate(raw string) []string {
	return tracking.Validate(raw)
}

func (u *TrackingUseCase) List(ctx context.Context, rid, pk *int64) ([]domain.TrackingLink, error) {
	return u.repo.ListTrackingLinks(ctx, rid, pk)
}

func (u *TrackingUseCase) Platforms() []domain.Platform {
	return tracking.Platforms()
}
