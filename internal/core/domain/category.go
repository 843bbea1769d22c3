package domain

import (
	"errors"
	"time"
)

// OfferType groups category codes into the marketing occasion an
// Opportunity is opened for.
type OfferType string

const (
	OfferEvent   OfferType = "event"
	OfferLunch   OfferType = "lunch"
	OfferPromo   OfferType = "promo"
	OfferProduct OfferType = "product"
	OfferBrand   OfferType = "brand"
	OfferInfo    OfferType = "info"
)

// Valid reports whether o is a known offer type.
func (o OfferType) Valid() bool {
	switch o {
	case OfferEvent, OfferLunch, OfferPromo, OfferProduct, OfferBrand, OfferInfo:
		return true
	}
	return false
}

// Category codes assigned by the classifier.
const (
	CategoryEventAll      = "EV_ALL"
	CategoryEventFamily   = "EV_FAM"
	CategoryEventCouples  = "EV_PAR"
	CategoryEventSeniors  = "EV_SEN"
	CategoryLunchOnSite   = "LU_ONS"
	CategoryLunchDelivery = "LU_DEL"
	CategoryPromoOnSiteRe = "PR_ONS_CYK"
	CategoryPromoOnSiteOn = "PR_ONS_JED"
	CategoryPromoDelRe    = "PR_DEL_CYK"
	CategoryPromoDelOn    = "PR_DEL_JED"
	CategoryProductOnSite = "PD_ONS"
	CategoryProductDel    = "PD_DEL"
	CategoryBrand         = "BRAND"
	CategoryInfo          = "INFO"
)

// CategorySpec is the static description of a category code. It is the
// single place that decides offer type and event-ness of a code.
type CategorySpec struct {
	Code             string
	Name             string
	OfferType        OfferType
	IsEvent          bool
	RequiresDelivery bool
}

var catalog = []CategorySpec{
	{CategoryEventAll, "Event for everyone", OfferEvent, true, false},
	{CategoryEventFamily, "Family event", OfferEvent, true, false},
	{CategoryEventCouples, "Event for couples", OfferEvent, true, false},
	{CategoryEventSeniors, "Event for seniors", OfferEvent, true, false},
	{CategoryLunchOnSite, "Lunch on-site", OfferLunch, false, false},
	{CategoryLunchDelivery, "Lunch delivery", OfferLunch, false, true},
	{CategoryPromoOnSiteRe, "Recurring promo on-site", OfferPromo, false, false},
	{CategoryPromoOnSiteOn, "One-off promo on-site", OfferPromo, false, false},
	{CategoryPromoDelRe, "Recurring promo delivery", OfferPromo, false, true},
	{CategoryPromoDelOn, "One-off promo delivery", OfferPromo, false, true},
	{CategoryProductOnSite, "Product on-site", OfferProduct, false, false},
	{CategoryProductDel, "Product delivery", OfferProduct, false, true},
	{CategoryBrand, "Brand", OfferBrand, false, false},
	{CategoryInfo, "Information", OfferInfo, false, false},
}

var catalogByCode = func() map[string]CategorySpec {
	m := make(map[string]CategorySpec, len(catalog))
	for _, c := range catalog {
		m[c.Code] = c
	}
	return m
}()

// Catalog returns every valid category code in display order.
func Catalog() []CategorySpec {
	out := make([]CategorySpec, len(catalog))
	copy(out, catalog)
	return out
}

// LookupCategory returns the catalogue entry of a code.
func LookupCategory(code string) (CategorySpec, bool) {
	c, ok := catalogByCode[code]
	return c, ok
}

// IsValidCategory reports whether code is one of the enumerated codes.
func IsValidCategory(code string) bool {
	_, ok := catalogByCode[code]
	return ok
}

// OfferTypeOf maps a category code to its offer type. Unknown codes map to
// OfferInfo so the mapping is total.
func OfferTypeOf(code string) OfferType {
	if c, ok := catalogByCode[code]; ok {
		return c.OfferType
	}
	return OfferInfo
}

// Interest is a Meta interest id/name pair.
type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Gender codes follow Meta's targeting spec: 1 male, 2 female. An empty
// list targets everyone.
const (
	GenderMale   = 1
	GenderFemale = 2
)

// TargetingTemplate is the admin-editable audience of a category.
type TargetingTemplate struct {
	AgeMin    int        `json:"age_min"`
	AgeMax    int        `json:"age_max"`
	Genders   []int      `json:"genders"`
	Interests []Interest `json:"interests"`
}

// Validate checks the template bounds accepted by the ad platform.
func (t TargetingTemplate) Validate() error {
	if t.AgeMin < 13 || t.AgeMax > 65 {
		return errors.New("age range must be within 13..65")
	}
	if t.AgeMin > t.AgeMax {
		return errors.New("age_min must not exceed age_max")
	}
	for _, g := range t.Genders {
		if g != GenderMale && g != GenderFemale {
			return errors.New("genders must be 1 (male) or 2 (female)")
		}
	}
	for _, i := range t.Interests {
		if i.ID == "" {
			return errors.New("interest id is required")
		}
	}
	return nil
}

// AdSetCategory is the persisted form of a category code.
type AdSetCategory struct {
	ID                string            `json:"id"`
	Code              string            `json:"code"`
	Name              string            `json:"name"`
	OfferType         OfferType         `json:"offer_type"`
	RequiresDelivery  bool              `json:"requires_delivery"`
	IsEventType       bool              `json:"is_event_type"`
	TargetingTemplate TargetingTemplate `json:"targeting_template"`
	CreatedAt         time.Time         `json:"created_at"`
}

var (
	interestFamily       = Interest{ID: "6003476182657", Name: "Family"}
	interestDating       = Interest{ID: "6003139892773", Name: "Dating"}
	interestRestaurants  = Interest{ID: "6003107902433", Name: "Restaurants"}
	interestFoodDelivery = Interest{ID: "6003384829661", Name: "Food delivery"}
	interestFood         = Interest{ID: "6003384248805", Name: "Food and drink"}
)

// DefaultCategories returns the seed rows for the category table.
func DefaultCategories() []AdSetCategory {
	templates := map[string]TargetingTemplate{
		CategoryEventFamily:   {AgeMin: 25, AgeMax: 55, Interests: []Interest{interestFamily}},
		CategoryEventCouples:  {AgeMin: 21, AgeMax: 45, Interests: []Interest{interestDating}},
		CategoryEventSeniors:  {AgeMin: 55, AgeMax: 65},
		CategoryLunchOnSite:   {AgeMin: 18, AgeMax: 65, Interests: []Interest{interestRestaurants}},
		CategoryLunchDelivery: {AgeMin: 18, AgeMax: 65, Interests: []Interest{interestFoodDelivery}},
		CategoryProductDel:    {AgeMin: 18, AgeMax: 65, Interests: []Interest{interestFoodDelivery}},
		CategoryPromoDelRe:    {AgeMin: 18, AgeMax: 65, Interests: []Interest{interestFoodDelivery}},
		CategoryPromoDelOn:    {AgeMin: 18, AgeMax: 65, Interests: []Interest{interestFoodDelivery}},
		CategoryProductOnSite: {AgeMin: 18, AgeMax: 65, Interests: []Interest{interestFood}},
	}
	out := make([]AdSetCategory, 0, len(catalog))
	for _, c := range catalog {
		tpl, ok := templates[c.Code]
		if !ok {
			tpl = TargetingTemplate{AgeMin: 18, AgeMax: 65}
		}
		out = append(out, AdSetCategory{
			Code:              c.Code,
			Name:              c.Name,
			OfferType:         c.OfferType,
			RequiresDelivery:  c.RequiresDelivery,
			IsEventType:       c.IsEvent,
			TargetingTemplate: tpl,
		})
	}
	return out
}
