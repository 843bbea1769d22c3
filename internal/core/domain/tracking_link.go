package domain

import "time"

// TrackingLink is an audit record of an attribution URL handed to an ad.
type TrackingLink struct {
	ID             string    `json:"id"`
	RID            int64     `json:"rid"`
	PlatformID     int       `json:"pi"`
	PK             int64     `json:"pk"`
	PlacementID    string    `json:"ps"`
	PostID         *string   `json:"post_id"`
	DestinationURL string    `json:"destination_url"`
	FinalURL       string    `json:"final_url"`
	CParam         string    `json:"c_param"`
	UTMSource      string    `json:"utm_source"`
	UTMMedium      string    `json:"utm_medium"`
	UTMCampaign    string    `json:"utm_campaign"`
	UTMContent     string    `json:"utm_content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Platform is a traffic source that tracking links can be generated for.
type Platform struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Medium string `json:"medium"`
}
