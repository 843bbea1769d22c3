package domain

import "time"

// Classification is the outcome of classifying a post's text.
type Classification struct {
	Category         string
	EventIdentifier  *string
	EventDate        *time.Time
	PromotionEndDate time.Time
}

// IsEvent reports whether the category is an event category.
func (c Classification) IsEvent() bool {
	spec, ok := LookupCategory(c.Category)
	return ok && spec.IsEvent
}
