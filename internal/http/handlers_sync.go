package http

import (
	"encoding/json"
	"errors"
	"net/http"

	applog "github.com/ortiq01/financial-dashboard/internal/log"
	syncpkg "github.com/ortiq01/financial-dashboard/internal/sync"
)

// syncRequest is the optional POST /api/sync body. Missing credentials fall
// back to the configured pair.
type syncRequest struct {
	SecretID   string   `json:"secretId"`
	SecretKey  string   `json:"secretKey"`
	AccountIDs []string `json:"accountIds"`
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	creds := syncpkg.Credentials{
		SecretID:  sanitizeInput(req.SecretID),
		SecretKey: sanitizeInput(req.SecretKey),
	}
	if creds.Empty() {
		creds = s.opts.Credentials
	}

	accounts := req.AccountIDs
	if len(accounts) == 0 {
		accounts = s.opts.AccountIDs
	}

	status, err := s.trigger.Trigger(r.Context(), creds, accounts)
	if err != nil {
		if errors.Is(err, syncpkg.ErrMissingCredentials) {
			writeError(w, http.StatusBadRequest, "secretId and secretKey are required")
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Sync trigger failed", "error", err)
		writeError(w, http.StatusInternalServerError, "sync failed to start")
		return
	}

	// A fresh result means the snapshot on disk changed.
	if status.LastResult != nil && status.LastResult.OK {
		s.snapshotCache.Delete(snapshotCacheKey)
	}

	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trigger.Status())
}
