package db

import (
	"context"
	"log/slog"

	"resto-ads/internal/core/domain"
)

// CategorySeeder inserts categories that are not stored yet and reports
// how many were added.
type CategorySeeder interface {
	SeedCategories(ctx context.Context, categories []domain.AdSetCategory) (int, error)
}

// Seed stores the default category catalogue. Existing rows, including
// admin edits to their targeting templates, are left untouched.
func Seed(ctx context.Context, s CategorySeeder, logger *slog.Logger) error {
	n, err := s.SeedCategories(ctx, domain.DefaultCategories())
	if err != nil {
		return err
	}
	logger.Info("category catalogue seeded", slog.Int("inserted", n))
	return nil
}
