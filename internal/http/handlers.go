package http

import (
	"log/slog"
	"net/http"
	"time"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.savings == nil {
		checks["savings"] = "failed: store not configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else if _, err := s.savings.ListSavings(r.Context()); err != nil {
		checks["savings"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["savings"] = "ok"
	}

	if s.snapshot == nil {
		checks["snapshot"] = "failed: store not configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["snapshot"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// handleTransactions serves the current snapshot, briefly cached.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if snap, found := s.snapshotCache.Get(snapshotCacheKey); found {
		slog.DebugContext(r.Context(), "Snapshot cache hit",
			"transactions", len(snap.Transactions))
		writeJSON(w, http.StatusOK, snap)
		return
	}

	snap := s.snapshot.Load(r.Context())
	s.snapshotCache.Set(snapshotCacheKey, snap)
	writeJSON(w, http.StatusOK, snap)
}
