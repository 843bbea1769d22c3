package domain

import (
	"strings"
	"time"
	"unicode"
)

// Area is the city-size tier of a restaurant. It drives the default
// targeting radius of non-delivery ad sets.
type Area string

const (
	AreaSmall  Area = "S-CITY"
	AreaMedium Area = "M-CITY"
	AreaLarge  Area = "L-CITY"
)

// RadiusKm returns the base targeting radius for the tier.
func (a Area) RadiusKm() float64 {
	switch a {
	case AreaSmall:
		return 5
	case AreaMedium:
		return 10
	case AreaLarge:
		return 15
	default:
		return 10
	}
}

// Location is the geo point of a restaurant.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// IsSet reports whether the point differs from the (0,0) sentinel used for
// restaurants without a configured location.
func (l Location) IsSet() bool {
	return l.Lat != 0 || l.Lng != 0
}

// Restaurant is a client whose social posts are promoted. RID is the
// numeric id exposed in tracking links.
type Restaurant struct {
	ID                 string    `json:"id"`
	RID                int64     `json:"rid"`
	Slug               string    `json:"slug"`
	Name               string    `json:"name"`
	Website            string    `json:"website"`
	Area               Area      `json:"area"`
	Fame               string    `json:"fame"`
	DeliveryRadiusKm   float64   `json:"delivery_radius_km"`
	FacebookPageID     string    `json:"facebook_page_id"`
	InstagramAccountID *string   `json:"instagram_account_id"`
	MetaCampaignID     *string   `json:"meta_campaign_id"`
	Location           Location  `json:"location"`
	CreatedAt          time.Time `json:"created_at"`
}

// HasCampaign reports whether a Meta campaign is attached.
func (r Restaurant) HasCampaign() bool {
	return r.MetaCampaignID != nil && *r.MetaCampaignID != ""
}

var slugFold = strings.NewReplacer(
	"ą", "a", "ę", "e", "ó", "o", "ś", "s", "ł", "l",
	"ż", "z", "ź", "z", "ć", "c", "ń", "n",
)

// Slugify builds a URL-safe slug from a restaurant name. Polish diacritics
// are folded to ASCII and every other run of non-alphanumerics becomes a
// single dash.
func Slugify(name string) string {
	s := slugFold.Replace(strings.ToLower(name))
	var b strings.Builder
	dash := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
