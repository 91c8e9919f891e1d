package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// apiListProperties returns the active properties matching the search
// query string, in the same form the search page accepts.
func (s *Server) apiListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.listings.Properties(r.Context())
	if err != nil {
		apiError(w, fmt.Sprintf("listing properties: %v", err), http.StatusInternalServerError)
		return
	}

	criteria := search.ParsePropertyQuery(r.URL.Query())
	apiJSON(w, nonNil(criteria.Apply(listing.Active(props))), http.StatusOK)
}

// apiGetProperty returns a single active property.
func (s *Server) apiGetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}

	p, err := s.listings.Property(r.Context(), id)
	if errors.Is(err, listing.ErrNotFound) || (err == nil && !p.IsActive()) {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("loading property: %v", err), http.StatusInternalServerError)
		return
	}

	apiJSON(w, p, http.StatusOK)
}

// apiListRoommates returns the roommates matching the query string.
func (s *Server) apiListRoommates(w http.ResponseWriter, r *http.Request) {
	roommates, err := s.listings.Roommates(r.Context())
	if err != nil {
		apiError(w, fmt.Sprintf("listing roommates: %v", err), http.StatusInternalServerError)
		return
	}

	criteria := search.ParseRoommateQuery(r.URL.Query())
	apiJSON(w, nonNil(criteria.Apply(roommates)), http.StatusOK)
}

// apiRecommendations returns active properties by match score, optionally
// capped by ?limit.
func (s *Server) apiRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			apiError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	props, err := s.listings.Properties(r.Context())
	if err != nil {
		apiError(w, fmt.Sprintf("listing properties: %v", err), http.StatusInternalServerError)
		return
	}

	recs := search.SortStable(listing.Active(props), search.ByMatch)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	apiJSON(w, nonNil(recs), http.StatusOK)
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
