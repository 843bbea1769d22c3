package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"resto-ads/internal/core/domain"
)

const adSetColumns = `a.id, a.restaurant_id, a.category_id, c.code, a.opportunity_id, a.pk, a.meta_ad_set_id,
    a.name, a.version, a.ads_count, a.status, a.event_identifier, a.created_at`

const adSetFrom = ` FROM ad_sets a JOIN ad_set_categories c ON c.id = a.category_id`

// partitionFilter matches $1..$4 against the partition columns; NULL pk
// and event identifier are values of their own.
const partitionFilter = ` WHERE a.restaurant_id = $1 AND a.category_id = $2
    AND a.pk IS NOT DISTINCT FROM $3::bigint
    AND a.event_identifier IS NOT DISTINCT FROM $4::text`

func scanAdSet(row pgx.Row) (*domain.AdSet, error) {
	var a domain.AdSet
	err := row.Scan(&a.ID, &a.RestaurantID, &a.CategoryID, &a.CategoryCode, &a.OpportunityID, &a.OpportunityPK,
		&a.MetaAdSetID, &a.Name, &a.Version, &a.AdsCount, &a.Status, &a.EventIdentifier, &a.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func partitionArgs(p domain.Partition) []any {
	return []any{p.RestaurantID, p.CategoryID, p.OpportunityPK, p.EventIdentifier}
}

// FindOpenAdSet always hits the database; capacity must never be read
// from a cache.
func (s *Store) FindOpenAdSet(ctx context.Context, p domain.Partition, capacity int) (*domain.AdSet, error) {
	args := append(partitionArgs(p), capacity)
	return scanAdSet(s.db.QueryRow(ctx, `SELECT `+adSetColumns+adSetFrom+partitionFilter+`
        AND a.status = 'ACTIVE' AND a.ads_count < $5
        ORDER BY a.version DESC
        LIMIT 1`, args...))
}

func (s *Store) MaxAdSetVersion(ctx context.Context, p domain.Partition) (int, error) {
	var v int
	err := s.db.QueryRow(ctx, `SELECT COALESCE(MAX(a.version), 0) FROM ad_sets a`+partitionFilter, partitionArgs(p)...).Scan(&v)
	return v, mapErr(err)
}

// CreateAdSet returns port.ErrConflict when the partition already has the
// version.
func (s *Store) CreateAdSet(ctx context.Context, a *domain.AdSet) error {
	err := s.db.QueryRow(ctx, `
        INSERT INTO ad_sets
            (restaurant_id, category_id, opportunity_id, pk, meta_ad_set_id, name, version, ads_count, status, event_identifier)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`,
		a.RestaurantID, a.CategoryID, a.OpportunityID, a.OpportunityPK, a.MetaAdSetID, a.Name,
		a.Version, a.AdsCount, a.Status, a.EventIdentifier,
	).Scan(&a.ID, &a.CreatedAt)
	return mapErr(err)
}

func (s *Store) GetAdSet(ctx context.Context, id string) (*domain.AdSet, error) {
	return scanAdSet(s.db.QueryRow(ctx, `SELECT `+adSetColumns+adSetFrom+` WHERE a.id = $1`, id))
}

func (s *Store) ListAdSets(ctx context.Context, restaurantID *string) ([]domain.AdSet, error) {
	rows, err := s.db.Query(ctx, `SELECT `+adSetColumns+adSetFrom+`
        WHERE $1::uuid IS NULL OR a.restaurant_id = $1
        ORDER BY a.created_at DESC`, restaurantID)
	if err != nil {
		return nil, mapErr(err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdSet, error) {
		a, err := scanAdSet(row)
		if err != nil {
			return domain.AdSet{}, err
		}
		return *a, nil
	})
}

// IncrementAdsCount is a single UPDATE so concurrent increments never lose
// a count.
func (s *Store) IncrementAdsCount(ctx context.Context, id string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `UPDATE ad_sets SET ads_count = ads_count + 1 WHERE id = $1 RETURNING ads_count`, id).Scan(&n)
	return n, mapErr(err)
}

func (s *Store) DeleteAdSet(ctx context.Context, id string) error {
	return affected(s.db.Exec(ctx, `DELETE FROM ad_sets WHERE id = $1`, id))
}
