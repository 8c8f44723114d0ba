package bridge

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chapyter/cellsync/internal/journal"
)

// Handler returns the full HTTP surface: the websocket endpoint, the JSON
// API, and a health check, wrapped in logging and rate limiting.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/links", s.handleLinks)
	mux.HandleFunc("/api/history", s.handleHistory)

	var h http.Handler = mux
	h = rateLimitMiddleware(s.cfg.API.GetRateLimitRPS(), s.cfg.API.GetRateLimitBurst())(h)
	h = requestLogMiddleware(s.debug)(h)
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLinks serves the live linked pairs, optionally filtered with
// ?notebook=.
func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	links := s.Links(r.URL.Query().Get("notebook"))
	type pair struct {
		Notebook       string `json:"notebook"`
		TriggerID      string `json:"triggerId"`
		GeneratedID    string `json:"generatedId"`
		ExecutionCount int    `json:"executionCount"`
	}
	pairs := make([]pair, 0, len(links))
	for _, ev := range links {
		pairs = append(pairs, pair{
			Notebook:       ev.Notebook,
			TriggerID:      ev.TriggerID,
			GeneratedID:    ev.GeneratedID,
			ExecutionCount: ev.ExecutionCount,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": pairs})
}

// handleHistory serves the journal, optionally filtered with ?notebook= and
// capped with ?limit=.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.journal == nil {
		writeJSONError(w, http.StatusNotFound, "journal is not enabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := s.journal.Recent(r.Context(), r.URL.Query().Get("notebook"), limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": entries})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
