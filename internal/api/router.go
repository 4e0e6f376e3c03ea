package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// System metrics (no auth required for basic monitoring)
		r.Get("/metrics", s.handleMetrics)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			// WS ticket requires authentication - caller must hold a token to request a ticket
			r.Post("/auth/ws-ticket", s.handleWSTicket)

			// Timer endpoints
			r.Route("/timers", func(r chi.Router) {
				r.Get("/", s.handleListTimers)
				r.Post("/", s.handleCreateTimer)
				r.Delete("/", s.handleCancelTimers)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetTimer)
					r.Delete("/", s.handleCancelTimer)
					r.Post("/start", s.handleStartTimer)
					r.Post("/snooze", s.handleSnoozeTimer)
				})
			})

			// Satellite endpoints
			r.Route("/satellites", func(r chi.Router) {
				r.Get("/", s.handleListSatellites)
				r.Post("/", s.handleCreateSatellite)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetSatellite)
					r.Patch("/", s.handleUpdateSatellite)
					r.Delete("/", s.handleDeleteSatellite)
				})
			})

			// WebSocket (auth via ticket, validated in handler)
			r.Get("/ws", s.handleWebSocket)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mqttConnected := false
	if s.mqtt != nil {
		mqttConnected = s.mqtt.IsConnected()
	}

	dbHealthy := true
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			dbHealthy = false
		}
	}

	status := "ok"
	if !dbHealthy {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"version":   s.version,
		"mqtt":      mqttConnected,
		"database":  dbHealthy,
		"languages": s.languages.Codes(),
	})
}
