package http

import (
	"encoding/json"
	"net/http"

	"github.com/ortiq01/financial-dashboard/internal/core"
	applog "github.com/ortiq01/financial-dashboard/internal/log"
)

func (s *Server) handleListSavings(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.savings.ListSavings(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "List savings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list savings")
		return
	}
	if accounts == nil {
		accounts = []core.SavingsAccount{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleUpsertSavings(w http.ResponseWriter, r *http.Request) {
	var u core.SavingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	u.AccountName = sanitizeInput(u.AccountName)
	u.AccountType = sanitizeInput(u.AccountType)
	u.Institution = sanitizeInput(u.Institution)

	if err := u.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	stored, err := s.savings.UpsertSavings(r.Context(), u)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Upsert savings failed",
			"account_name", u.AccountName,
			"error", err)
		writeError(w, http.StatusInternalServerError, "failed to save account")
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleSavingsHistory(w http.ResponseWriter, r *http.Request) {
	accountName := sanitizeInput(r.URL.Query().Get("account"))
	if accountName == "" {
		writeError(w, http.StatusBadRequest, "account query parameter is required")
		return
	}

	limit := parseLimit(r, 100)

	entries, err := s.savings.History(r.Context(), accountName, limit)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Savings history failed",
			"account_name", accountName,
			"error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if entries == nil {
		entries = []core.SavingsEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}
