package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	"resto-ads/internal/core/domain"
)

const postColumns = `id, restaurant_id, ad_set_id, opportunity_id, pk, meta_post_id, meta_ad_id, meta_creative_id,
    content, category_code, event_date, promotion_end_date, status, payload, created_at`

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		p       domain.Post
		payload []byte
	)
	err := row.Scan(&p.ID, &p.RestaurantID, &p.AdSetID, &p.OpportunityID, &p.OpportunityPK, &p.ExternalPostID,
		&p.ExternalAdID, &p.CreativeID, &p.Content, &p.CategoryCode, &p.EventDate, &p.PromotionEndDate,
		&p.Status, &payload, &p.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	if len(payload) > 0 {
		p.Payload = json.RawMessage(payload)
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]domain.Post, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Post, error) {
		p, err := scanPost(row)
		if err != nil {
			return domain.Post{}, err
		}
		return *p, nil
	})
}

// CreatePost returns port.ErrConflict when the external post id is taken.
func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	var payload []byte
	if len(p.Payload) > 0 {
		payload = p.Payload
	}
	err := s.db.QueryRow(ctx, `
        INSERT INTO posts
            (restaurant_id, ad_set_id, opportunity_id, pk, meta_post_id, meta_ad_id, meta_creative_id,
             content, category_code, event_date, promotion_end_date, status, payload)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at`,
		p.RestaurantID, p.AdSetID, p.OpportunityID, p.OpportunityPK, p.ExternalPostID, p.ExternalAdID, p.CreativeID,
		p.Content, p.CategoryCode, p.EventDate, p.PromotionEndDate, p.Status, payload,
	).Scan(&p.ID, &p.CreatedAt)
	return mapErr(err)
}

func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return scanPost(s.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (s *Store) GetPostByExternalID(ctx context.Context, externalPostID string) (*domain.Post, error) {
	return scanPost(s.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE meta_post_id = $1`, externalPostID))
}

func (s *Store) ListPosts(ctx context.Context, restaurantID *string) ([]domain.Post, error) {
	rows, err := s.db.Query(ctx, `SELECT `+postColumns+` FROM posts
        WHERE $1::uuid IS NULL OR restaurant_id = $1
        ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, mapErr(err)
	}
	return collectPosts(rows)
}

// ListDuePosts returns ACTIVE posts whose promotion ends on or before day.
func (s *Store) ListDuePosts(ctx context.Context, day time.Time) ([]domain.Post, error) {
	rows, err := s.db.Query(ctx, `SELECT `+postColumns+` FROM posts
        WHERE status = 'ACTIVE' AND promotion_end_date <= $1::date
        ORDER BY created_at`, domain.Day(day))
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (s *Store) UpdatePostStatus(ctx context.Context, id string, status domain.PostStatus) error {
	return affected(s.db.Exec(ctx, `UPDATE posts SET status = $2 WHERE id = $1`, id, status))
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	return affected(s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id))
}

func (s *Store) DeletePostsByAdSet(ctx context.Context, adSetID string) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE ad_set_id = $1`, adSetID)
	if err != nil {
		return 0, mapErr(err)
	}
	return int(tag.RowsAffected()), nil
}
