package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"resto-ads/internal/core/domain"
)

func (h *Handler) handleListAdSets(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.AdSets.List(r.Context(), optionalString(r, "restaurantId"))
	if err != nil {
		h.fail(w, r, "list ad sets", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleDeleteAdSet removes the ad set in the ad platform and locally,
// together with its posts.
func (h *Handler) handleDeleteAdSet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AdSets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete ad set", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.AdSets.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var tpl domain.TargetingTemplate
	if err := decodeJSON(r, &tpl); err != nil {
		h.fail(w, r, "update category", err)
		return
	}
	cat, err := h.svc.AdSets.UpdateCategoryTemplate(r.Context(), chi.URLParam(r, "id"), tpl)
	if err != nil {
		h.fail(w, r, "update category", err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.AdSets.ListEvents(r.Context(), optionalString(r, "restaurantId"))
	if err != nil {
		h.fail(w, r, "list events", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
