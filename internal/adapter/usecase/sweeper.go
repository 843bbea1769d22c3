package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
	"resto-ads/internal/metrics"
)

// ExpirationSweeper pauses and expires posts whose promotion end date has
// been reached.
type ExpirationSweeper struct {
	store    port.PostRepository
	platform port.AdPlatform
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

var _ port.Sweeper = (*ExpirationSweeper)(nil)

func NewExpirationSweeper(store port.PostRepository, platform port.AdPlatform, m *metrics.Metrics, logger *slog.Logger) *ExpirationSweeper {
	return &ExpirationSweeper{store: store, platform: platform, metrics: m, logger: logger, now: time.Now}
}

// Sweep expires every ACTIVE post with promotion_end_date <= today. A
// failing item is counted and reported; it never stops the run, and Sweep
// itself never fails.
func (s *ExpirationSweeper) Sweep(ctx context.Context) port.SweepResult {
	res := port.SweepResult{Errors: []string{}}
	today := domain.Day(s.now())

	due, err := s.store.ListDuePosts(ctx, today)
	if err != nil {
		s.logger.Error("list posts to expire", slog.Any("error", err))
		res.Errors = append(res.Errors, fmt.Sprintf("job error: %v", err))
		return res
	}
	res.Total = len(due)

	for i := range due {
		p := &due[i]
		if err := s.expire(ctx, p); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("post %s: %v", p.ExternalPostID, err))
			s.metrics.Swept("failed")
			s.logger.Warn("expire post", slog.String("post_id", p.ExternalPostID), slog.Any("error", err))
			continue
		}
		res.Success++
		s.metrics.Swept("expired")
	}

	s.logger.Info("expiration sweep finished",
		slog.Int("total", res.Total),
		slog.Int("success", res.Success),
		slog.Int("failed", res.Failed),
	)
	return res
}

func (s *ExpirationSweeper) expire(ctx context.Context, p *domain.Post) error {
	if p.ExternalAdID != nil && *p.ExternalAdID != "" {
		if err := s.platform.SetStatus(ctx, *p.ExternalAdID, port.StatusPaused); err != nil {
			return fmt.Errorf("pause ad %s: %w", *p.ExternalAdID, err)
		}
	}
	return s.store.UpdatePostStatus(ctx, p.ID, domain.PostExpired)
}
