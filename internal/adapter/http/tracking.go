package httpadapter

import (
	"context"
	"net/http"

	"resto-ads/internal/core/tracking"
)

type generateRequest struct {
	tracking.Params
	Save bool `json:"save"`
}

type generateResponse struct {
	tracking.Link
	Saved bool `json:"saved"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (h *Handler) handleListTrackingLinks(w http.ResponseWriter, r *http.Request) {
	rid, err := optionalInt(r, "rid")
	if err != nil {
		h.fail(w, r, "list tracking links", err)
		return
	}
	pk, err := optionalInt(r, "pk")
	if err != nil {
		h.fail(w, r, "list tracking links", err)
		return
	}
	list, err := h.svc.Tracking.List(r.Context(), rid, pk)
	if err != nil {
		h.fail(w, r, "list tracking links", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handlePlatforms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Tracking.Platforms())
}

func (h *Handler) handleGenerateLink(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "generate link", h.svc.Tracking.Generate)
}

func (h *Handler) handleGenerateMetaLink(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "generate meta link", h.svc.Tracking.GenerateMeta)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, op string,
	gen func(ctx context.Context, p tracking.Params, save bool) (tracking.Link, error),
) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	link, err := gen(r.Context(), req.Params, req.Save)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Link: link, Saved: req.Save})
}

func (h *Handler) handleParseLink(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "parse link", err)
		return
	}
	parsed, err := h.svc.Tracking.Parse(req.URL)
	if err != nil {
		h.fail(w, r, "parse link", err)
		return
	}
	writeJSON(w, http.StatusOK, parsed)
}

func (h *Handler) handleValidateLink(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "validate link", err)
		return
	}
	problems := h.svc.Tracking.Validate(req.URL)
	if problems == nil {
		problems = []string{}
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: len(problems) == 0, Errors: problems})
}
