package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"NetSentry/internal/query"
)

// APIHandler serves read-only queries over the stored flagged events.
type APIHandler struct {
	querier query.Querier
}

// eventsHandler returns stored events, filtered by optional src_ip, reason
// prefix, since (RFC3339) and limit query parameters.
func (h *APIHandler) eventsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := query.EventFilter{
		SrcIP:  q.Get("src_ip"),
		Reason: q.Get("reason"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = n
	}
	if v := q.Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid since timestamp", http.StatusBadRequest)
			return
		}
		filter.Since = ts
	}

	events, err := h.querier.Events(r.Context(), filter)
	if err != nil {
		log.Printf("ERROR: events query failed: %v", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, events)
}

// topSourcesHandler returns the most flagged sources over the past window,
// 24h by default.
func (h *APIHandler) topSourcesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	since := time.Now().Add(-24 * time.Hour)
	if v := q.Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid since timestamp", http.StatusBadRequest)
			return
		}
		since = ts
	}
	limit := 10
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	counts, err := h.querier.TopSources(r.Context(), since, limit)
	if err != nil {
		log.Printf("ERROR: top sources query failed: %v", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, counts)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR: failed to encode response: %v", err)
	}
}
