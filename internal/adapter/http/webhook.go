package httpadapter

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"resto-ads/internal/core/port"
)

const webhookSecretHeader = "X-Webhook-Secret"

type ayrsharePostID struct {
	Platform string `json:"platform"`
	PostID   string `json:"postId"`
}

type ayrsharePayload struct {
	Post struct {
		PostIDs []ayrsharePostID `json:"postIds"`
		Post    string           `json:"post"`
	} `json:"post"`
	RefID   string `json:"refId"`
	Profile string `json:"profile"`
}

// target picks the first facebook or instagram post and the page it was
// published on.
func (p ayrsharePayload) target() (postID, pageID string) {
	for _, id := range p.Post.PostIDs {
		if (id.Platform == "facebook" || id.Platform == "instagram") && id.PostID != "" {
			postID = id.PostID
			break
		}
	}
	pageID = p.RefID
	if pageID == "" {
		pageID = p.Profile
	}
	return postID, pageID
}

type webhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PostID  string `json:"post_id,omitempty"`
	AdID    string `json:"ad_id,omitempty"`
}

// handleAyrshareWebhook promotes a post reported as published. Deliveries
// that cannot be processed are acknowledged with success=false so the
// sender does not redeliver them; only a bad secret is rejected.
func (h *Handler) handleAyrshareWebhook(w http.ResponseWriter, r *http.Request) {
	if h.webhook.Secret != "" {
		got := r.Header.Get(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhook.Secret)) != 1 {
			h.metrics.Webhook("unauthorized")
			writeError(w, http.StatusUnauthorized, "invalid webhook secret")
			return
		}
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.metrics.Webhook("invalid")
		writeError(w, http.StatusBadRequest, "cannot read body")
		return
	}
	var payload ayrsharePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.metrics.Webhook("invalid")
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	postID, pageID := payload.target()
	if postID == "" {
		h.metrics.Webhook("ignored")
		writeJSON(w, http.StatusOK, webhookResponse{Message: "no facebook or instagram post id in payload"})
		return
	}
	if pageID == "" {
		h.metrics.Webhook("ignored")
		writeJSON(w, http.StatusOK, webhookResponse{Message: "no page id in payload"})
		return
	}

	post, err := h.svc.Promotions.Promote(r.Context(), port.PromoteInput{
		PageID:         pageID,
		ExternalPostID: postID,
		Content:        payload.Post.Post,
		Payload:        raw,
	})
	if err != nil {
		result := "failed"
		if errors.Is(err, port.ErrAlreadyPromoted) || errors.Is(err, port.ErrPromotionInProgress) {
			result = "duplicate"
		}
		h.metrics.Webhook(result)
		h.logger.Warn("webhook promotion failed",
			slog.String("post_id", postID),
			slog.String("page_id", pageID),
			slog.Any("error", err),
		)
		writeJSON(w, http.StatusOK, webhookResponse{Message: err.Error(), PostID: postID})
		return
	}

	h.metrics.Webhook("promoted")
	resp := webhookResponse{Success: true, Message: "post promoted", PostID: post.ExternalPostID}
	if post.ExternalAdID != nil {
		resp.AdID = *post.ExternalAdID
	}
	writeJSON(w, http.StatusOK, resp)
}
