package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"resto-ads/internal/core/port"
)

func (h *Handler) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Restaurants.List(r.Context())
	if err != nil {
		h.fail(w, r, "list restaurants", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleCreateRestaurant stores the restaurant and tries to open its
// campaign. A campaign failure still answers 201; the restaurant comes
// back without meta_campaign_id and can be fixed with retry-campaign.
func (h *Handler) handleCreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var in port.RestaurantInput
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, "create restaurant", err)
		return
	}
	rest, err := h.svc.Restaurants.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create restaurant", err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) handleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.svc.Restaurants.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get restaurant", err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) handleUpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	var in port.RestaurantInput
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, "update restaurant", err)
		return
	}
	rest, err := h.svc.Restaurants.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, "update restaurant", err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) handleDeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Restaurants.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete restaurant", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRetryCampaign(w http.ResponseWriter, r *http.Request) {
	rest, err := h.svc.Restaurants.RetryCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "retry campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}
