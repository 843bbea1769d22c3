package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"resto-ads/internal/core/domain"
)

const eventColumns = `id, restaurant_id, ad_set_id, identifier, name, event_date, created_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(&e.ID, &e.RestaurantID, &e.AdSetID, &e.Identifier, &e.Name, &e.EventDate, &e.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func (s *Store) GetEvent(ctx context.Context, restaurantID, identifier string) (*domain.Event, error) {
	return scanEvent(s.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE restaurant_id = $1 AND identifier = $2`, restaurantID, identifier))
}

func (s *Store) CreateEvent(ctx context.Context, e *domain.Event) error {
	err := s.db.QueryRow(ctx, `
        INSERT INTO events (restaurant_id, ad_set_id, identifier, name, event_date)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`,
		e.RestaurantID, e.AdSetID, e.Identifier, e.Name, e.EventDate,
	).Scan(&e.ID, &e.CreatedAt)
	return mapErr(err)
}

func (s *Store) ListEvents(ctx context.Context, restaurantID *string) ([]domain.Event, error) {
	rows, err := s.db.Query(ctx, `SELECT `+eventColumns+` FROM events
        WHERE $1::uuid IS NULL OR restaurant_id = $1
        ORDER BY event_date`, restaurantID)
	if err != nil {
		return nil, mapErr(err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Event, error) {
		e, err := scanEvent(row)
		if err != nil {
			return domain.Event{}, err
		}
		return *e, nil
	})
}
