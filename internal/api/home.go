package api

import (
	"net/http"

	"github.com/hearthd/hearth-core/internal/home"
)

// handleActivate runs ActivateAll and returns the execution summary.
//
// The walk is synchronous: stub appliances respond instantly, so the
// caller gets the full outcome (including any per-appliance failures)
// in the 200 body rather than polling the journal.
func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	s.runOperation(w, r, home.OpActivate)
}

// handleDeactivate runs DeactivateAll and returns the execution summary.
func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	s.runOperation(w, r, home.OpDeactivate)
}

// runOperation dispatches one bulk operation to the coordinator.
// Executions triggered here journal as manual, sourced "api".
func (s *Server) runOperation(w http.ResponseWriter, r *http.Request, op home.Op) {
	exec, err := s.home.Run(r.Context(), op, "manual", "api")
	if err != nil {
		s.logger.Error("bulk operation failed",
			"op", string(op),
			"error", err,
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
		writeInternalError(w, "operation failed")
		return
	}

	writeJSON(w, http.StatusOK, exec)
}
