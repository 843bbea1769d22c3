package domain

// Targeting is the audience sent to the ad platform for a new ad set. It
// combines a category template with the restaurant's geo circle.
type Targeting struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	RadiusKm  float64    `json:"radius_km"`
	AgeMin    int        `json:"age_min"`
	AgeMax    int        `json:"age_max"`
	Genders   []int      `json:"genders,omitempty"`
	Interests []Interest `json:"interests,omitempty"`
}

// Default age bounds used when a template leaves them unset.
const (
	DefaultAgeMin = 18
	DefaultAgeMax = 65
)

// BuildTargeting merges a template with a geo circle.
func BuildTargeting(tpl TargetingTemplate, loc Location, radiusKm float64) Targeting {
	t := Targeting{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
		RadiusKm:  radiusKm,
		AgeMin:    tpl.AgeMin,
		AgeMax:    tpl.AgeMax,
		Genders:   append([]int(nil), tpl.Genders...),
		Interests: append([]Interest(nil), tpl.Interests...),
	}
	if t.AgeMin == 0 {
		t.AgeMin = DefaultAgeMin
	}
	if t.AgeMax == 0 {
		t.AgeMax = DefaultAgeMax
	}
	return t
}
