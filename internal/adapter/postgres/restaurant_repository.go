package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"resto-ads/internal/core/domain"
)

const restaurantColumns = `id, rid, slug, name, website, area, fame, delivery_radius_km,
    facebook_page_id, instagram_account_id, meta_campaign_id, lat, lng, address, created_at`

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var r domain.Restaurant
	err := row.Scan(
		&r.ID,
		&r.RID,
		&r.Slug,
		&r.Name,
		&r.Website,
		&r.Area,
		&r.Fame,
		&r.DeliveryRadiusKm,
		&r.FacebookPageID,
		&r.InstagramAccountID,
		&r.MetaCampaignID,
		&r.Location.Lat,
		&r.Location.Lng,
		&r.Location.Address,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

// CreateRestaurant inserts r and fills its generated id, rid and creation time.
func (s *Store) CreateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	err := s.db.QueryRow(ctx, `
        INSERT INTO restaurants
            (slug, name, website, area, fame, delivery_radius_km, facebook_page_id,
             instagram_account_id, meta_campaign_id, lat, lng, address)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, rid, created_at`,
		r.Slug, r.Name, r.Website, r.Area, r.Fame, r.DeliveryRadiusKm, r.FacebookPageID,
		r.InstagramAccountID, r.MetaCampaignID, r.Location.Lat, r.Location.Lng, r.Location.Address,
	).Scan(&r.ID, &r.RID, &r.CreatedAt)
	return mapErr(err)
}

func (s *Store) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	return scanRestaurant(s.db.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
}

func (s *Store) GetRestaurantByPageID(ctx context.Context, pageID string) (*domain.Restaurant, error) {
	return scanRestaurant(s.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE facebook_page_id = $1 ORDER BY created_at LIMIT 1`, pageID))
}

func (s *Store) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := s.db.Query(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Restaurant, error) {
		r, err := scanRestaurant(row)
		if err != nil {
			return domain.Restaurant{}, err
		}
		return *r, nil
	})
}

func (s *Store) UpdateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	return affected(s.db.Exec(ctx, `
        UPDATE restaurants SET
            name = $2, website = $3, area = $4, fame = $5, delivery_radius_km = $6,
            facebook_page_id = $7, instagram_account_id = $8, lat = $9, lng = $10, address = $11
        WHERE id = $1`,
		r.ID, r.Name, r.Website, r.Area, r.Fame, r.DeliveryRadiusKm,
		r.FacebookPageID, r.InstagramAccountID, r.Location.Lat, r.Location.Lng, r.Location.Address,
	))
}

func (s *Store) SetCampaignID(ctx context.Context, id, campaignID string) error {
	return affected(s.db.Exec(ctx, `UPDATE restaurants SET meta_campaign_id = $2 WHERE id = $1`, id, campaignID))
}

// DeleteRestaurant relies on ON DELETE CASCADE for dependent rows.
func (s *Store) DeleteRestaurant(ctx context.Context, id string) error {
	return affected(s.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id))
}
