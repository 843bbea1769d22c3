package domain

import (
	"encoding/json"
	"time"
)

// PostStatus is the lifecycle state of a promoted post.
type PostStatus string

const (
	PostPending PostStatus = "PENDING"
	PostActive  PostStatus = "ACTIVE"
	PostPaused  PostStatus = "PAUSED"
	PostExpired PostStatus = "EXPIRED"
)

// Post is a published Facebook/Instagram post together with the ad that
// promotes it. ExternalPostID is unique among stored posts.
type Post struct {
	ID               string          `json:"id"`
	RestaurantID     string          `json:"restaurant_id"`
	AdSetID          *string         `json:"ad_set_id"`
	OpportunityID    *string         `json:"opportunity_id"`
	OpportunityPK    *int64          `json:"pk"`
	ExternalPostID   string          `json:"meta_post_id"`
	ExternalAdID     *string         `json:"meta_ad_id"`
	CreativeID       *string         `json:"meta_creative_id"`
	Content          string          `json:"content"`
	CategoryCode     string          `json:"category_code"`
	EventDate        *time.Time      `json:"event_date"`
	PromotionEndDate *time.Time      `json:"promotion_end_date"`
	Status           PostStatus      `json:"status"`
	Payload          json.RawMessage `json:"payload"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Day truncates t to midnight UTC of its calendar date in t's location.
// Post dates are calendar days without a time component.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"
