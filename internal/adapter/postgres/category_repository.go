package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"resto-ads/internal/core/domain"
)

const categoryColumns = `id, code, name, offer_type, requires_delivery, is_event_type, targeting_template, created_at`

func scanCategory(row pgx.Row) (*domain.AdSetCategory, error) {
	var (
		c   domain.AdSetCategory
		tpl []byte
	)
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.OfferType, &c.RequiresDelivery, &c.IsEventType, &tpl, &c.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	if len(tpl) > 0 {
		if err := json.Unmarshal(tpl, &c.TargetingTemplate); err != nil {
			return nil, fmt.Errorf("decode targeting template of %s: %w", c.Code, err)
		}
	}
	return &c, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.AdSetCategory, error) {
	return scanCategory(s.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM ad_set_categories WHERE id = $1`, id))
}

func (s *Store) GetCategoryByCode(ctx context.Context, code string) (*domain.AdSetCategory, error) {
	return scanCategory(s.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM ad_set_categories WHERE code = $1`, code))
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.AdSetCategory, error) {
	rows, err := s.db.Query(ctx, `SELECT `+categoryColumns+` FROM ad_set_categories ORDER BY code`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdSetCategory, error) {
		c, err := scanCategory(row)
		if err != nil {
			return domain.AdSetCategory{}, err
		}
		return *c, nil
	})
}

func (s *Store) UpdateCategoryTemplate(ctx context.Context, id string, tpl domain.TargetingTemplate) error {
	data, err := json.Marshal(tpl)
	if err != nil {
		return err
	}
	return affected(s.db.Exec(ctx, `UPDATE ad_set_categories SET targeting_template = $2 WHERE id = $1`, id, data))
}

// SeedCategories inserts the default catalogue, leaving existing codes
// untouched.
func (s *Store) SeedCategories(ctx context.Context, categories []domain.AdSetCategory) (int, error) {
	inserted := 0
	for _, c := range categories {
		tpl, err := json.Marshal(c.TargetingTemplate)
		if err != nil {
			return inserted, err
		}
		tag, err := s.db.Exec(ctx, `
            INSERT INTO ad_set_categories (code, name, offer_type, requires_delivery, is_event_type, targeting_template)
            VALUES ($1,$2,$3,$4,$5,$6)
            ON CONFLICT (code) DO NOTHING`,
			c.Code, c.Name, c.OfferType, c.RequiresDelivery, c.IsEventType, tpl,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed category %s: %w", c.Code, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
