package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
//
// Mutating routes require a bearer token; reads are open on the trusted
// LAN. The WebSocket route authenticates via single-use ticket inside
// the handler.
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
		// Health check and login (no auth required)
		r.Get("/health", s.handleHealth)
		r.Post("/auth/login", s.handleLogin)

		// Roster reads
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)
			r.Get("/stats", s.handleDeviceStats)
		})

		// Execution journal reads
		r.Route("/executions", func(r chi.Router) {
			r.Get("/", s.handleListExecutions)
			r.Get("/stats", s.handleExecutionStats)
			r.Get("/{id}", s.handleGetExecution)
		})

		// System status (no auth required for basic monitoring)
		r.Get("/system", s.handleSystem)

		// WebSocket (auth via ticket, validated in handler)
		r.Get("/ws", s.handleWebSocket)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			// WS ticket requires authentication - user must be logged in to request a ticket
			r.Post("/auth/ws-ticket", s.handleWSTicket)

			// Whole-home operations
			r.Route("/home", func(r chi.Router) {
				r.Post("/activate", s.handleActivate)
				r.Post("/deactivate", s.handleDeactivate)
			})
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
