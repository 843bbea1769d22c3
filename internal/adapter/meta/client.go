// Package meta is the Graph API implementation of port.AdPlatform. Every
// call is a single attempt; structured API errors come back as
// *port.PlatformError.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"resto-ads/internal/config/configs"
	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
	"resto-ads/internal/metrics"
)

// Client talks to graph.facebook.com with a system user access token.
type Client struct {
	http      *http.Client
	baseURL   string
	token     string
	accountID string
	agency    string
	metrics   *metrics.Metrics
	logger    *slog.Logger

	currencyMu sync.Mutex
	currency   string
}

var _ port.AdPlatform = (*Client)(nil)

// New creates a client for cfg. m may be nil.
func New(cfg configs.Meta, m *metrics.Metrics, logger *slog.Logger) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.APIVersion,
		token:     cfg.AccessToken,
		accountID: strings.TrimPrefix(cfg.AdAccountID, "act_"),
		agency:    cfg.AgencyName,
		metrics:   m,
		logger:    logger,
	}
}

type apiError struct {
	Message     string `json:"message"`
	Type        string `json:"type"`
	Code        int    `json:"code"`
	Subcode     int    `json:"error_subcode"`
	UserTitle   string `json:"error_user_title"`
	UserMessage string `json:"error_user_msg"`
	FBTraceID   string `json:"fbtrace_id"`
}

type idResponse struct {
	ID string `json:"id"`
}

// do sends one request and decodes the response into out. Graph API
// errors are returned as *port.PlatformError.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	defer c.metrics.ObservePlatform(op, time.Now())

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("meta api call", slog.String("op", op), slog.String("method", method), slog.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		// *url.Error prints the full request URL; keep only the cause.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return fmt.Errorf("meta %s %s: %w", op, method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("meta %s: read response: %w", op, err)
	}

	var envelope struct {
		Error *apiError `json:"error"`
	}
	_ = json.Unmarshal(raw, &envelope)
	if envelope.Error != nil {
		e := envelope.Error
		c.logger.Warn("meta api error",
			slog.String("op", op),
			slog.Int("code", e.Code),
			slog.Int("subcode", e.Subcode),
			slog.String("message", e.Message),
			slog.String("fbtrace_id", e.FBTraceID),
		)
		return &port.PlatformError{
			Status:      resp.StatusCode,
			Code:        e.Code,
			Subcode:     e.Subcode,
			Type:        e.Type,
			Message:     e.Message,
			UserMessage: strings.TrimSpace(e.UserTitle + " " + e.UserMessage),
		}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("meta %s: unexpected status %d: %s", op, resp.StatusCode, truncate(raw, 200))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("meta %s: decode response: %w", op, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

func (c *Client) create(ctx context.Context, op, path string, body any) (string, error) {
	var res idResponse
	if err := c.do(ctx, op, http.MethodPost, path, nil, body, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", fmt.Errorf("meta %s: response without id", op)
	}
	return res.ID, nil
}

func (c *Client) account() string {
	return "/act_" + c.accountID
}

// CreateCampaign opens a paused traffic campaign named "{rid}-{slug}".
func (c *Client) CreateCampaign(ctx context.Context, rid int64, slug string) (string, error) {
	id, err := c.create(ctx, "create_campaign", c.account()+"/campaigns", map[string]any{
		"name":                            fmt.Sprintf("%d-%s", rid, slug),
		"objective":                       "OUTCOME_TRAFFIC",
		"status":                          "PAUSED",
		"special_ad_categories":           []string{},
		"is_adset_budget_sharing_enabled": false,
	})
	if err != nil {
		return "", err
	}
	c.logger.Info("meta campaign created", slog.String("id", id), slog.Int64("rid", rid))
	return id, nil
}

// accountCurrency returns the billing currency of the ad account. The first
// successful answer is cached for the life of the client.
func (c *Client) accountCurrency(ctx context.Context) (string, error) {
	c.currencyMu.Lock()
	defer c.currencyMu.Unlock()
	if c.currency != "" {
		return c.currency, nil
	}
	var res struct {
		Currency string `json:"currency"`
	}
	if err := c.do(ctx, "get_ad_account", http.MethodGet, c.account(), url.Values{"fields": {"currency"}}, nil, &res); err != nil {
		return "", err
	}
	c.currency = strings.ToUpper(res.Currency)
	return c.currency, nil
}

// CreateAdSet refuses to send a budget in a currency the ad account does not
// bill in, since daily_budget is read in the account's minor units.
func (c *Client) CreateAdSet(ctx context.Context, req port.CreateAdSetRequest) (string, error) {
	if req.Currency != "" {
		cur, err := c.accountCurrency(ctx)
		if err != nil {
			return "", err
		}
		if cur != strings.ToUpper(req.Currency) {
			return "", port.Configurationf("ad account %s bills in %s, budgets are configured in %s", c.accountID, cur, req.Currency)
		}
	}
	body := map[string]any{
		"campaign_id":       req.CampaignID,
		"name":              req.Name,
		"status":            "ACTIVE",
		"daily_budget":      req.DailyBudget,
		"billing_event":     "IMPRESSIONS",
		"optimization_goal": "POST_ENGAGEMENT",
		"bid_strategy":      "LOWEST_COST_WITHOUT_CAP",
		"targeting":         targetingSpec(req.Targeting),
		"dsa_beneficiary":   req.Beneficiary,
		"dsa_payor":         c.agency,
	}
	if req.PageID != "" {
		body["promoted_object"] = map[string]string{"page_id": req.PageID}
	}
	return c.create(ctx, "create_ad_set", c.account()+"/adsets", body)
}

// CreateCreative builds a creative from the existing page post. A call to
// action is attached only when a destination is known.
func (c *Client) CreateCreative(ctx context.Context, req port.CreateCreativeRequest) (string, error) {
	body := map[string]any{
		"name":            "Creative - " + req.ExternalPostID,
		"object_story_id": objectStoryID(req.PageID, req.ExternalPostID),
		"degrees_of_freedom_spec": map[string]any{
			"creative_features_spec": map[string]any{
				"standard_enhancements": map[string]string{"enroll_status": "OPT_OUT"},
			},
		},
		"contextual_multi_ads": map[string]string{"enroll_status": "OPT_OUT"},
	}
	if req.DestinationURL != "" {
		body["call_to_action"] = map[string]any{
			"type":  "LEARN_MORE",
			"value": map[string]string{"link": req.DestinationURL},
		}
		if req.URLTags != "" {
			body["url_tags"] = req.URLTags
		}
	}
	return c.create(ctx, "create_creative", c.account()+"/adcreatives", body)
}

// objectStoryID accepts both bare post ids and "{page}_{post}" ids.
func objectStoryID(pageID, postID string) string {
	if strings.Contains(postID, "_") {
		return postID
	}
	return pageID + "_" + postID
}

// CreateAd creates an active ad with a provisional name; the caller
// renames it once the id is known.
func (c *Client) CreateAd(ctx context.Context, adSetID, creativeID string, pk int64) (string, error) {
	return c.create(ctx, "create_ad", c.account()+"/ads", map[string]any{
		"name":     fmt.Sprintf("pk%d_new", pk),
		"adset_id": adSetID,
		"creative": map[string]string{"creative_id": creativeID},
		"status":   "ACTIVE",
	})
}

func (c *Client) Rename(ctx context.Context, objectID, name string) error {
	return c.do(ctx, "rename", http.MethodPost, "/"+objectID, nil, map[string]string{"name": name}, nil)
}

func (c *Client) SetStatus(ctx context.Context, objectID string, status port.AdStatus) error {
	return c.do(ctx, "set_status", http.MethodPost, "/"+objectID, nil, map[string]string{"status": string(status)}, nil)
}

// Delete marks the object as DELETED.
func (c *Client) Delete(ctx context.Context, objectID string) error {
	return c.do(ctx, "delete", http.MethodPost, "/"+objectID, nil, map[string]string{"status": "DELETED"}, nil)
}

// EstimateAudience asks for the reach range of a targeting spec.
func (c *Client) EstimateAudience(ctx context.Context, t domain.Targeting) (*port.AudienceEstimate, error) {
	spec, err := json.Marshal(targetingSpec(t))
	if err != nil {
		return nil, err
	}
	var res struct {
		Data json.RawMessage `json:"data"`
	}
	q := url.Values{"targeting_spec": {string(spec)}}
	if err := c.do(ctx, "reach_estimate", http.MethodGet, c.account()+"/reachestimate", q, nil, &res); err != nil {
		return nil, err
	}

	type bounds struct {
		Lower int64 `json:"users_lower_bound"`
		Upper int64 `json:"users_upper_bound"`
	}
	var b bounds
	if err := json.Unmarshal(res.Data, &b); err != nil {
		var list []bounds
		if err := json.Unmarshal(res.Data, &list); err != nil || len(list) == 0 {
			return nil, fmt.Errorf("meta reach_estimate: unexpected data %s", truncate(res.Data, 200))
		}
		b = list[0]
	}
	return &port.AudienceEstimate{LowerBound: b.Lower, UpperBound: b.Upper}, nil
}
