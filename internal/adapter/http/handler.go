package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"resto-ads/internal/config/configs"
	"resto-ads/internal/core/port"
	"resto-ads/internal/metrics"
)

// Services are the usecases the HTTP adapter drives.
type Services struct {
	Restaurants   port.RestaurantUseCase
	AdSets        port.AdSetUseCase
	Promotions    port.PromotionUseCase
	Opportunities port.OpportunityUseCase
	Tracking      port.TrackingUseCase
	Sweeper       port.Sweeper
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: the admin API, the post webhook, health and metrics endpoints are
// registered on a chi.Router.
type Handler struct {
	svc     Services
	webhook configs.Webhook
	metrics *metrics.Metrics
	logger  *slog.Logger
	router  chi.Router
}

// NewHandler creates a handler with all routes configured. m may be nil, in
// which case /metrics serves the default registry.
func NewHandler(svc Services, webhook configs.Webhook, m *metrics.Metrics, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, webhook: webhook, metrics: m, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(newRateLimiter(webhook, m, logger).limit).
			Post("/webhook/ayrshare", h.handleAyrshareWebhook)

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", h.handleListRestaurants)
			r.Post("/", h.handleCreateRestaurant)
			r.Get("/{id}", h.handleGetRestaurant)
			r.Put("/{id}", h.handleUpdateRestaurant)
			r.Delete("/{id}", h.handleDeleteRestaurant)
			r.Post("/{id}/retry-campaign", h.handleRetryCampaign)
		})

		r.Route("/ad-sets", func(r chi.Router) {
			r.Get("/", h.handleListAdSets)
			r.Get("/categories", h.handleListCategories)
			r.Put("/categories/{id}", h.handleUpdateCategory)
			r.Get("/events", h.handleListEvents)
			r.Delete("/{id}", h.handleDeleteAdSet)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.handleListPosts)
			r.Post("/manual", h.handleManualPost)
			r.Post("/{id}/pause", h.handlePausePost)
			r.Post("/{id}/activate", h.handleActivatePost)
			r.Post("/{id}/retry", h.handleRetryPost)
			r.Delete("/{id}", h.handleDeletePost)
		})

		r.Route("/opportunities", func(r chi.Router) {
			r.Get("/", h.handleListOpportunities)
			r.Post("/", h.handleCreateOpportunity)
			r.Get("/by-pk/{rid}/{pk}", h.handleGetOpportunityByPK)
			r.Get("/{id}", h.handleGetOpportunity)
			r.Put("/{id}", h.handleUpdateOpportunity)
			r.Delete("/{id}", h.handleDeleteOpportunity)
		})

		r.Route("/tracking-links", func(r chi.Router) {
			r.Get("/", h.handleListTrackingLinks)
			r.Get("/platforms", h.handlePlatforms)
			r.Post("/generate", h.handleGenerateLink)
			r.Post("/generate-meta", h.handleGenerateMetaLink)
			r.Post("/parse", h.handleParseLink)
			r.Post("/validate", h.handleValidateLink)
		})

		r.Post("/scheduler/expire-posts", h.handleExpirePosts)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
