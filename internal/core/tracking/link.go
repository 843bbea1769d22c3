// Package tracking builds and parses attribution URLs. A link carries the
// restaurant id in r, the composite .pi{platform}.pk{pk}.ps{placement}
// value in c and four UTM fields.
package tracking

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"resto-ads/internal/core/domain"
)

// Source is the fixed utm_source of every link.
const Source = "mysite"

// PlatformMeta is the platform id of Facebook/Instagram ads, and
// MetaAdMacro is the placeholder Meta replaces with the serving ad's id.
const (
	PlatformMeta = 1
	MetaAdMacro  = "{{ad.id}}"
)

var platforms = []domain.Platform{
	{ID: 1, Name: "Meta Ads", Medium: "meta"},
	{ID: 2, Name: "Google Ads", Medium: "google"},
	{ID: 3, Name: "Email", Medium: "email"},
	{ID: 4, Name: "Influencer", Medium: "influencer"},
	{ID: 5, Name: "Marketplace", Medium: "marketplace"},
}

// Platforms returns the known traffic sources.
func Platforms() []domain.Platform {
	out := make([]domain.Platform, len(platforms))
	copy(out, platforms)
	return out
}

// Medium maps a platform id to its utm_medium, "unknown" when unmapped.
func Medium(platformID int) string {
	for _, p := range platforms {
		if p.ID == platformID {
			return p.Medium
		}
	}
	return "unknown"
}

// Params are the inputs of Build.
type Params struct {
	RID             int64  `json:"rid"`
	PlatformID      int    `json:"pi"`
	PK              int64  `json:"pk"`
	PlacementID     string `json:"ps"`
	DestinationURL  string `json:"destinationUrl"`
	OpportunitySlug string `json:"opportunitySlug"`
	CategoryCode    string `json:"categoryCode"`
	Version         int    `json:"version"`
}

// Components are the query values appended by Build.
type Components struct {
	R           string `json:"r"`
	C           string `json:"c"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content"`
}

// Values returns the components as query values.
func (c Components) Values() url.Values {
	v := url.Values{}
	v.Set("r", c.R)
	v.Set("c", c.C)
	v.Set("utm_source", c.UTMSource)
	v.Set("utm_medium", c.UTMMedium)
	v.Set("utm_campaign", c.UTMCampaign)
	v.Set("utm_content", c.UTMContent)
	return v
}

// Link is the result of Build.
type Link struct {
	FinalURL   string     `json:"finalUrl"`
	Components Components `json:"components"`
}

// ErrInvalidURL is returned when the destination is not an absolute URL.
var ErrInvalidURL = errors.New("invalid destination url")

// Build appends the attribution parameters to p.DestinationURL. Existing
// query parameters with the same names are replaced, others are kept.
func Build(p Params) (Link, error) {
	dest, err := url.Parse(p.DestinationURL)
	if err != nil || dest.Scheme == "" || dest.Host == "" {
		return Link{}, fmt.Errorf("%w: %q", ErrInvalidURL, p.DestinationURL)
	}
	c := Components{
		R:           strconv.FormatInt(p.RID, 10),
		C:           fmt.Sprintf(".pi%d.pk%d.ps%s", p.PlatformID, p.PK, p.PlacementID),
		UTMSource:   Source,
		UTMMedium:   Medium(p.PlatformID),
		UTMCampaign: fmt.Sprintf("pk%d-%s", p.PK, p.OpportunitySlug),
		UTMContent:  fmt.Sprintf("%s-v%d", p.CategoryCode, p.Version),
	}
	q := dest.Query()
	for k, v := range c.Values() {
		q[k] = v
	}
	dest.RawQuery = encode(q)
	return Link{FinalURL: dest.String(), Components: c}, nil
}

var escapedMacro = url.QueryEscape(MetaAdMacro)

// encode renders query values, leaving the Meta ad macro unescaped so the
// platform can substitute it.
func encode(v url.Values) string {
	return strings.ReplaceAll(v.Encode(), escapedMacro, MetaAdMacro)
}

// URLTags renders the components as the url_tags string of an ad creative.
func URLTags(c Components) string {
	return encode(c.Values())
}

// BuildMeta builds a Meta ads link whose placement is the ad id macro.
func BuildMeta(p Params) (Link, error) {
	p.PlatformID = PlatformMeta
	p.PlacementID = MetaAdMacro
	return Build(p)
}

// Parsed holds the fields recovered from a tracking URL. Missing fields
// are empty.
type Parsed struct {
	RID         string `json:"rid,omitempty"`
	PI          string `json:"pi,omitempty"`
	PK          string `json:"pk,omitempty"`
	PS          string `json:"ps,omitempty"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`
}

var (
	piPattern = regexp.MustCompile(`\.pi(\d+)`)
	pkPattern = regexp.MustCompile(`\.pk(\d+)`)
	// ps is the last component and may itself contain dots.
	psPattern = regexp.MustCompile(`\.ps(.+)$`)
)

// Parse extracts the attribution fields from an arbitrary URL.
func Parse(raw string) (Parsed, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return Parsed{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	q := u.Query()
	p := Parsed{
		RID:         q.Get("r"),
		UTMSource:   q.Get("utm_source"),
		UTMMedium:   q.Get("utm_medium"),
		UTMCampaign: q.Get("utm_campaign"),
		UTMContent:  q.Get("utm_content"),
	}
	if c := q.Get("c"); c != "" {
		p.PI = submatch(piPattern, c)
		p.PK = submatch(pkPattern, c)
		p.PS = submatch(psPattern, c)
	}
	return p, nil
}

func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// Validate lists every required field missing from the URL. An empty
// result means the URL is a complete tracking link.
func Validate(raw string) []string {
	p, err := Parse(raw)
	if err != nil {
		return []string{"invalid URL format"}
	}
	var problems []string
	check := func(v, msg string) {
		if v == "" {
			problems = append(problems, msg)
		}
	}
	check(p.RID, "missing r (restaurant id) parameter")
	check(p.PI, "missing pi (platform id) in c parameter")
	check(p.PK, "missing pk (opportunity key) in c parameter")
	check(p.PS, "missing ps (placement id) in c parameter")
	check(p.UTMSource, "missing utm_source parameter")
	check(p.UTMMedium, "missing utm_medium parameter")
	check(p.UTMCampaign, "missing utm_campaign parameter")
	check(p.UTMContent, "missing utm_content parameter")
	return problems
}
