package domain

import (
	"fmt"
	"time"
)

// AdSetStatus is the delivery state of an ad set.
type AdSetStatus string

const (
	AdSetActive AdSetStatus = "ACTIVE"
	AdSetPaused AdSetStatus = "PAUSED"
)

// AdSet groups up to a capacity of ads sharing one audience. Legacy ad
// sets created before opportunities existed have a nil OpportunityPK.
type AdSet struct {
	ID              string      `json:"id"`
	RestaurantID    string      `json:"restaurant_id"`
	CategoryID      string      `json:"category_id"`
	CategoryCode    string      `json:"category_code"`
	OpportunityID   *string     `json:"opportunity_id"`
	OpportunityPK   *int64      `json:"pk"`
	MetaAdSetID     string      `json:"meta_ad_set_id"`
	Name            string      `json:"name"`
	Version         int         `json:"version"`
	AdsCount        int         `json:"ads_count"`
	Status          AdSetStatus `json:"status"`
	EventIdentifier *string     `json:"event_identifier"`
	CreatedAt       time.Time   `json:"created_at"`
}

// IsOpen reports whether the ad set may receive another ad.
func (a AdSet) IsOpen(capacity int) bool {
	return a.Status == AdSetActive && a.AdsCount < capacity
}

// Partition is the key under which ad set versions are numbered. Two ad
// sets share a partition when restaurant, category, opportunity and event
// identifier are all equal; a nil PK or EventIdentifier is a value of its
// own.
type Partition struct {
	RestaurantID    string
	CategoryID      string
	OpportunityPK   *int64
	EventIdentifier *string
}

// PartitionOf returns the partition an ad set belongs to.
func PartitionOf(a AdSet) Partition {
	return Partition{
		RestaurantID:    a.RestaurantID,
		CategoryID:      a.CategoryID,
		OpportunityPK:   a.OpportunityPK,
		EventIdentifier: a.EventIdentifier,
	}
}

// Key renders the partition as a stable string usable as a lock or map key.
func (p Partition) Key() string {
	pk := "-"
	if p.OpportunityPK != nil {
		pk = fmt.Sprint(*p.OpportunityPK)
	}
	ev := "-"
	if p.EventIdentifier != nil {
		ev = *p.EventIdentifier
	}
	return fmt.Sprintf("%s:%s:%s:%s", p.RestaurantID, p.CategoryID, pk, ev)
}

// Matches reports whether the ad set belongs to the partition.
func (p Partition) Matches(a AdSet) bool {
	return PartitionOf(a).Key() == p.Key()
}

// AdSetName is the deterministic ad set name. Legacy ad sets without an
// opportunity are prefixed with the restaurant slug instead of the pk.
func AdSetName(pk *int64, restaurantSlug, categoryCode string, version int) string {
	if pk == nil {
		return fmt.Sprintf("%s_%s_v%d", restaurantSlug, categoryCode, version)
	}
	return fmt.Sprintf("pk%d_%s_v%d", *pk, categoryCode, version)
}

// AdName is the deterministic name of an ad once its external id is known.
func AdName(pk int64, externalAdID string) string {
	return fmt.Sprintf("pk%d_%s", pk, externalAdID)
}
