package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

var manualPayload = json.RawMessage(`{"manual":true}`)

type manualPostRequest struct {
	RestaurantID string `json:"restaurant_id"`
	PostID       string `json:"post_id"`
	Content      string `json:"content"`
}

func (h *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Promotions.List(r.Context(), optionalString(r, "restaurantId"))
	if err != nil {
		h.fail(w, r, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleManualPost promotes a post an admin picked by hand, bypassing the
// webhook.
func (h *Handler) handleManualPost(w http.ResponseWriter, r *http.Request) {
	var req manualPostRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "manual post", err)
		return
	}
	if req.RestaurantID == "" || req.PostID == "" {
		writeError(w, http.StatusBadRequest, "restaurant_id and post_id are required")
		return
	}
	post, err := h.svc.Promotions.Promote(r.Context(), port.PromoteInput{
		RestaurantID:   req.RestaurantID,
		ExternalPostID: req.PostID,
		Content:        req.Content,
		Payload:        manualPayload,
	})
	if err != nil {
		h.fail(w, r, "manual post", err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *Handler) handlePausePost(w http.ResponseWriter, r *http.Request) {
	h.postAction(w, r, "pause post", h.svc.Promotions.Pause)
}

func (h *Handler) handleActivatePost(w http.ResponseWriter, r *http.Request) {
	h.postAction(w, r, "activate post", h.svc.Promotions.Activate)
}

func (h *Handler) handleRetryPost(w http.ResponseWriter, r *http.Request) {
	h.postAction(w, r, "retry post", h.svc.Promotions.Retry)
}

func (h *Handler) postAction(w http.ResponseWriter, r *http.Request, op string,
	action func(ctx context.Context, ref string) (*domain.Post, error),
) {
	post, err := action(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *Handler) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Promotions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExpirePosts runs the expiration sweep now. Per-post failures are
// reported in the body, the status is always 200.
func (h *Handler) handleExpirePosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Sweeper.Sweep(r.Context()))
}
