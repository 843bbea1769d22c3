package domain

import (
	"strings"
	"time"
)

// Event is a dated occasion that routes every post mentioning it into the
// same ad set partition. Identifier is unique per restaurant.
type Event struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	AdSetID      string    `json:"ad_set_id"`
	Identifier   string    `json:"identifier"`
	Name         string    `json:"name"`
	EventDate    time.Time `json:"event_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventName derives a display name from an identifier like
// "walentynki-2026".
func EventName(identifier string) string {
	return strings.ReplaceAll(identifier, "-", " ")
}
