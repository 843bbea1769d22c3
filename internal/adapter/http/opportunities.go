package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"resto-ads/internal/core/port"
)

func (h *Handler) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	rid, err := optionalInt(r, "rid")
	if err != nil {
		h.fail(w, r, "list opportunities", err)
		return
	}
	list, err := h.svc.Opportunities.List(r.Context(), rid)
	if err != nil {
		h.fail(w, r, "list opportunities", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetOpportunity(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Opportunities.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get opportunity", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleGetOpportunityByPK(w http.ResponseWriter, r *http.Request) {
	rid, err := parseInt("rid", chi.URLParam(r, "rid"))
	if err != nil {
		h.fail(w, r, "get opportunity", err)
		return
	}
	pk, err := parseInt("pk", chi.URLParam(r, "pk"))
	if err != nil {
		h.fail(w, r, "get opportunity", err)
		return
	}
	o, err := h.svc.Opportunities.GetByPK(r.Context(), rid, pk)
	if err != nil {
		h.fail(w, r, "get opportunity", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var in port.OpportunityInput
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, "create opportunity", err)
		return
	}
	o, err := h.svc.Opportunities.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create opportunity", err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) handleUpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	var in port.OpportunityInput
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, "update opportunity", err)
		return
	}
	o, err := h.svc.Opportunities.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, "update opportunity", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleDeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Opportunities.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete opportunity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
