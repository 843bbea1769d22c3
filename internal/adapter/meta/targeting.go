package meta

import "resto-ads/internal/core/domain"

type customLocation struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Radius       float64 `json:"radius"`
	DistanceUnit string  `json:"distance_unit"`
}

type flexibleSpec struct {
	Interests []domain.Interest `json:"interests"`
}

// targeting is the Graph API targeting spec.
type targeting struct {
	GeoLocations struct {
		CustomLocations []customLocation `json:"custom_locations"`
	} `json:"geo_locations"`
	AgeMin             int            `json:"age_min"`
	AgeMax             int            `json:"age_max"`
	Genders            []int          `json:"genders,omitempty"`
	PublisherPlatforms []string       `json:"publisher_platforms"`
	FacebookPositions  []string       `json:"facebook_positions"`
	InstagramPositions []string       `json:"instagram_positions"`
	FlexibleSpec       []flexibleSpec `json:"flexible_spec,omitempty"`
}

func targetingSpec(t domain.Targeting) targeting {
	var spec targeting
	spec.GeoLocations.CustomLocations = []customLocation{{
		Latitude:     t.Latitude,
		Longitude:    t.Longitude,
		Radius:       t.RadiusKm,
		DistanceUnit: "kilometer",
	}}
	spec.AgeMin = t.AgeMin
	spec.AgeMax = t.AgeMax
	spec.Genders = t.Genders
	spec.PublisherPlatforms = []string{"facebook", "instagram"}
	spec.FacebookPositions = []string{"feed", "story", "reels"}
	spec.InstagramPositions = []string{"stream", "story", "reels"}
	if len(t.Interests) > 0 {
		spec.FlexibleSpec = []flexibleSpec{{Interests: t.Interests}}
	}
	return spec
}
