package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withAnalytics)

		r.Post("/api/auth/initiate", h.initiateAuth)
		r.Post("/api/auth/token", h.authenticate)
		r.Get("/api/version", h.appVersion)
	})

	// wallet-session routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		// analytics sits inside the auth wrapper so events carry the
		// authenticated wallet
		r.Use(h.withAnalytics)

		r.Get("/api/transactions/recall-dashboard", h.recallDashboard)
		r.Get("/api/transactions/consumable", h.consumable)
		r.Post("/api/transactions/send-single", h.sendSingle)
		r.Post("/api/transactions/send-batch", h.sendBatch)
		r.Put("/api/transactions/recall", h.recallBatch)
		r.Put("/api/transactions/consume", h.consume)
	})

	// gift surface, guarded by the service API key
	router.Group(func(r chi.Router) {
		r.Use(h.apiKey)
		r.Use(h.withAnalytics)

		r.Post("/api/gift/send", h.sendGift)
		r.Put("/api/gift/recall/{id}", h.recallGift)
		r.Get("/api/gift/{secret}", h.getGift)
		r.Put("/api/gift/{secret}/open", h.openGift)
	})

	return router
}
