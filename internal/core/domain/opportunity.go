package domain

import (
	"fmt"
	"time"
)

// OpportunityStatus is the lifecycle state of an Opportunity.
type OpportunityStatus string

const (
	OpportunityDraft     OpportunityStatus = "draft"
	OpportunityActive    OpportunityStatus = "active"
	OpportunityPaused    OpportunityStatus = "paused"
	OpportunityCompleted OpportunityStatus = "completed"
)

// Valid reports whether s is a known status.
func (s OpportunityStatus) Valid() bool {
	switch s {
	case OpportunityDraft, OpportunityActive, OpportunityPaused, OpportunityCompleted:
		return true
	}
	return false
}

// DefaultGoal is assigned to opportunities opened by the pipeline.
const DefaultGoal = "traffic"

// Opportunity is a restaurant-scoped marketing occasion. PK is allocated
// per restaurant from a monotonically increasing counter and never changes.
type Opportunity struct {
	ID           string            `json:"id"`
	RestaurantID string            `json:"restaurant_id"`
	RID          int64             `json:"rid"`
	PK           int64             `json:"pk"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	OfferType    OfferType         `json:"offer_type"`
	Goal         string            `json:"goal"`
	Status       OpportunityStatus `json:"status"`
	StartDate    *time.Time        `json:"start_date"`
	EndDate      *time.Time        `json:"end_date"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Label is the human readable "pk{n}-{slug}" form used in UTM campaigns.
func (o Opportunity) Label() string {
	return fmt.Sprintf("pk%d-%s", o.PK, o.Slug)
}
