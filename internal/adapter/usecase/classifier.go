package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

const (
	// maxPromotionDays caps how far in the future a promotion may run.
	maxPromotionDays = 60
	// defaultPromotionDays is used when classification fails.
	defaultPromotionDays = 30
)

// Classifier assigns a category code and promotion dates to post text
// using an LLM. It never fails: any error yields a safe INFO result.
type Classifier struct {
	llm    port.LLM
	logger *slog.Logger
	now    func() time.Time
}

// NewClassifier creates a classifier backed by llm.
func NewClassifier(llm port.LLM, logger *slog.Logger) *Classifier {
	return &Classifier{llm: llm, logger: logger, now: time.Now}
}

type classifierReply struct {
	Category         string  `json:"category"`
	EventDate        *string `json:"event_date"`
	EventIdentifier  *string `json:"event_identifier"`
	PromotionEndDate string  `json:"promotion_end_date"`
}

// Classify returns the classification of content. The promotion end date
// never exceeds the event date nor today plus 60 days.
func (c *Classifier) Classify(ctx context.Context, content string) domain.Classification {
	today := domain.Day(c.now())
	result, err := c.classify(ctx, content, today)
	if err != nil {
		c.logger.Error("post classification failed, using defaults", slog.Any("error", err))
		return domain.Classification{
			Category:         domain.CategoryInfo,
			PromotionEndDate: today.AddDate(0, 0, defaultPromotionDays),
		}
	}
	return result
}

func (c *Classifier) classify(ctx context.Context, content string, today time.Time) (domain.Classification, error) {
	maxEnd := today.AddDate(0, 0, maxPromotionDays)
	user := fmt.Sprintf("Today: %s\nLatest allowed promotion end date: %s\n\nPost:\n%s\n\nAnswer with JSON fields: category, event_date, event_identifier, promotion_end_date",
		today.Format(domain.DateLayout), maxEnd.Format(domain.DateLayout), content)

	text, err := c.llm.Complete(ctx, classifierPrompt, user)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("llm call: %w", err)
	}
	c.logger.Debug("llm reply", slog.String("reply", text))

	raw, ok := firstJSONObject(text)
	if !ok {
		return domain.Classification{}, errors.New("no JSON object in llm reply")
	}
	var reply classifierReply
	if err = json.Unmarshal([]byte(raw), &reply); err != nil {
		return domain.Classification{}, fmt.Errorf("decode llm reply: %w", err)
	}

	end, err := time.Parse(domain.DateLayout, strings.TrimSpace(reply.PromotionEndDate))
	if err != nil {
		return domain.Classification{}, fmt.Errorf("promotion_end_date %q: %w", reply.PromotionEndDate, err)
	}

	out := domain.Classification{Category: strings.TrimSpace(reply.Category), PromotionEndDate: end}
	if !domain.IsValidCategory(out.Category) {
		c.logger.Warn("llm returned unknown category, using INFO", slog.String("category", out.Category))
		out.Category = domain.CategoryInfo
	}
	if out.IsEvent() {
		if reply.EventDate != nil && *reply.EventDate != "" {
			d, perr := time.Parse(domain.DateLayout, strings.TrimSpace(*reply.EventDate))
			if perr != nil {
				c.logger.Warn("ignoring malformed event_date", slog.String("event_date", *reply.EventDate))
			} else {
				out.EventDate = &d
			}
		}
		if reply.EventIdentifier != nil {
			if id := strings.TrimSpace(*reply.EventIdentifier); id != "" {
				out.EventIdentifier = &id
			}
		}
	}

	if out.EventDate != nil && out.PromotionEndDate.After(*out.EventDate) {
		out.PromotionEndDate = *out.EventDate
	}
	if out.PromotionEndDate.After(maxEnd) {
		out.PromotionEndDate = maxEnd
	}
	return out, nil
}

// firstJSONObject returns the first balanced {...} block of s, skipping
// braces inside JSON strings.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

const classifierPrompt = `You classify restaurant social media posts for advertising campaigns.

Return exactly one JSON object with these fields:
1. category - one of:
   - EV_ALL (event for everyone)
   - EV_FAM (family event)
   - EV_PAR (event for couples)
   - EV_SEN (event for seniors)
   - LU_ONS (lunch on-site)
   - LU_DEL (lunch delivery)
   - PR_ONS_CYK (recurring promotion on-site, e.g. "every Tuesday")
   - PR_ONS_JED (one-off promotion on-site)
   - PR_DEL_CYK (recurring promotion with delivery)
   - PR_DEL_JED (one-off promotion with delivery)
   - PD_ONS (product on-site: a dish or a drink)
   - PD_DEL (product with delivery)
   - BRAND (brand post: atmosphere, interior, team)
   - INFO (information: opening hours, changes)
2. event_date - date of the event as YYYY-MM-DD, only for EV_* categories, otherwise null
3. event_identifier - short unique slug of the event (e.g. "valentines-2026", "jazz-night-kowalski-2026"), only for EV_* categories, otherwise null
4. promotion_end_date - suggested end of the promotion as YYYY-MM-DD:
   - events: the event date
   - one-off promotions: the end of the promotion, at most 14 days
   - recurring promotions: at most 60 days
   - products, brand and info: at most 30 days

Answer with the JSON object only.`
