package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hearthd/hearth-core/internal/home"
)

// handleListExecutions returns journal entries, newest first.
//
// Query parameters:
//   - op: filter by operation ("activate", "deactivate")
//   - status: filter by terminal status (completed, partial, failed, cancelled)
//   - limit: maximum rows to return (default 20, capped at 100)
func (s *Server) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	var filter home.ExecutionFilter

	q := r.URL.Query()
	if opStr := q.Get("op"); opStr != "" {
		op, err := home.ParseOp(opStr)
		if err != nil {
			writeBadRequest(w, `op must be "activate" or "deactivate"`)
			return
		}
		filter.Op = op
	}
	if statusStr := q.Get("status"); statusStr != "" {
		status := home.ExecutionStatus(statusStr)
		if !status.Valid() {
			writeBadRequest(w, "unknown status: "+statusStr)
			return
		}
		filter.Status = status
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	execs, err := s.repo.ListExecutions(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list executions", "error", err)
		writeInternalError(w, "failed to list executions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"executions": execs,
		"count":      len(execs),
	})
}

// handleGetExecution returns a single journal entry by ID.
func (s *Server) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	exec, err := s.repo.GetExecution(r.Context(), id)
	if err != nil {
		if errors.Is(err, home.ErrExecutionNotFound) {
			writeNotFound(w, "execution not found")
			return
		}
		s.logger.Error("failed to get execution", "id", id, "error", err)
		writeInternalError(w, "failed to get execution")
		return
	}

	writeJSON(w, http.StatusOK, exec)
}

// handleExecutionStats returns journal counts grouped by status.
func (s *Server) handleExecutionStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.repo.CountByStatus(r.Context())
	if err != nil {
		s.logger.Error("failed to count executions", "error", err)
		writeInternalError(w, "failed to count executions")
		return
	}

	total := 0
	byStatus := make(map[string]int, len(counts))
	for status, n := range counts {
		byStatus[string(status)] = n
		total += n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":     total,
		"by_status": byStatus,
	})
}
