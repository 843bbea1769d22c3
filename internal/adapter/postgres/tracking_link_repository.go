package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"resto-ads/internal/core/domain"
)

const trackingLinkColumns = `id, rid, pi, pk, ps, post_id, destination_url, final_url, c_param,
    utm_source, utm_medium, utm_campaign, utm_content, created_at`

func (s *Store) CreateTrackingLink(ctx context.Context, l *domain.TrackingLink) error {
	err := s.db.QueryRow(ctx, `
        INSERT INTO tracking_links
            (rid, pi, pk, ps, post_id, destination_url, final_url, c_param,
             utm_source, utm_medium, utm_campaign, utm_content)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at`,
		l.RID, l.PlatformID, l.PK, l.PlacementID, l.PostID, l.DestinationURL, l.FinalURL, l.CParam,
		l.UTMSource, l.UTMMedium, l.UTMCampaign, l.UTMContent,
	).Scan(&l.ID, &l.CreatedAt)
	return mapErr(err)
}

func (s *Store) ListTrackingLinks(ctx context.Context, rid, pk *int64) ([]domain.TrackingLink, error) {
	rows, err := s.db.Query(ctx, `SELECT `+trackingLinkColumns+` FROM tracking_links
        WHERE ($1::bigint IS NULL OR rid = $1) AND ($2::bigint IS NULL OR pk = $2)
        ORDER BY created_at DESC`, rid, pk)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TrackingLink, error) {
		var l domain.TrackingLink
		err := row.Scan(&l.ID, &l.RID, &l.PlatformID, &l.PK, &l.PlacementID, &l.PostID, &l.DestinationURL,
			&l.FinalURL, &l.CParam, &l.UTMSource, &l.UTMMedium, &l.UTMCampaign, &l.UTMContent, &l.CreatedAt)
		return l, err
	})
}
