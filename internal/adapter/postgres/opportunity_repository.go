package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"resto-ads/internal/core/domain"
)

const opportunityColumns = `id, restaurant_id, rid, pk, name, slug, offer_type, goal, status, start_date, end_date, created_at`

func scanOpportunity(row pgx.Row) (*domain.Opportunity, error) {
	var o domain.Opportunity
	err := row.Scan(&o.ID, &o.RestaurantID, &o.RID, &o.PK, &o.Name, &o.Slug, &o.OfferType,
		&o.Goal, &o.Status, &o.StartDate, &o.EndDate, &o.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

func collectOpportunities(rows pgx.Rows) ([]domain.Opportunity, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Opportunity, error) {
		o, err := scanOpportunity(row)
		if err != nil {
			return domain.Opportunity{}, err
		}
		return *o, nil
	})
}

// CreateOpportunity advances the restaurant's opportunity counter and
// inserts the row in one transaction. The counter row lock serialises
// concurrent creators, so pks are dense and never reused.
func (s *Store) CreateOpportunity(ctx context.Context, o *domain.Opportunity) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
        UPDATE restaurants SET opportunity_seq = opportunity_seq + 1
        WHERE id = $1
        RETURNING opportunity_seq, rid`, o.RestaurantID,
	).Scan(&o.PK, &o.RID)
	if err != nil {
		return mapErr(err)
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO opportunities
            (restaurant_id, rid, pk, name, slug, offer_type, goal, status, start_date, end_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`,
		o.RestaurantID, o.RID, o.PK, o.Name, o.Slug, o.OfferType, o.Goal, o.Status, o.StartDate, o.EndDate,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	return tx.Commit(ctx)
}

func (s *Store) GetOpportunity(ctx context.Context, id string) (*domain.Opportunity, error) {
	return scanOpportunity(s.db.QueryRow(ctx, `SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id))
}

func (s *Store) GetOpportunityByPK(ctx context.Context, rid, pk int64) (*domain.Opportunity, error) {
	return scanOpportunity(s.db.QueryRow(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE rid = $1 AND pk = $2`, rid, pk))
}

func (s *Store) FindActiveOpportunity(ctx context.Context, restaurantID string, offer domain.OfferType) (*domain.Opportunity, error) {
	return scanOpportunity(s.db.QueryRow(ctx, `
        SELECT `+opportunityColumns+` FROM opportunities
        WHERE restaurant_id = $1 AND offer_type = $2 AND status = 'active'
        ORDER BY created_at DESC, pk DESC
        LIMIT 1`, restaurantID, offer))
}

func (s *Store) ListOpportunities(ctx context.Context, rid *int64) ([]domain.Opportunity, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+opportunityColumns+` FROM opportunities
        WHERE $1::bigint IS NULL OR rid = $1
        ORDER BY rid, pk DESC`, rid)
	if err != nil {
		return nil, err
	}
	return collectOpportunities(rows)
}

// UpdateOpportunity never touches restaurant, rid or pk.
func (s *Store) UpdateOpportunity(ctx context.Context, o *domain.Opportunity) error {
	return affected(s.db.Exec(ctx, `
        UPDATE opportunities SET
            name = $2, slug = $3, offer_type = $4, goal = $5, status = $6, start_date = $7, end_date = $8
        WHERE id = $1`,
		o.ID, o.Name, o.Slug, o.OfferType, o.Goal, o.Status, o.StartDate, o.EndDate,
	))
}

func (s *Store) DeleteOpportunity(ctx context.Context, id string) error {
	return affected(s.db.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id))
}
