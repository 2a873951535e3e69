package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
)

type searchResponse struct {
	Results []domain.SearchResult `json:"results"`
}

// SearchTracks handles GET /search?q=...&limit=...
func (h *Handler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	results, err := h.search.Search(r.Context(), query, limit)
	if err != nil {
		if errors.Is(err, ports.ErrUpstream) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

// SaveTrack handles POST /tracks/saved.
func (h *Handler) SaveTrack(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var track domain.SearchResult
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if track.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.search.SaveTrack(r.Context(), track); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type savedTracksResponse struct {
	Tracks []domain.SearchResult `json:"tracks"`
}

// ListSavedTracks handles GET /tracks/saved.
func (h *Handler) ListSavedTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.search.ListSaved(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, savedTracksResponse{Tracks: tracks})
}
