package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
	"github.com/vibematch/backend/internal/core/services"
)

type recommendationsRequest struct {
	MoodAnalysis domain.MoodAnalysis `json:"mood_analysis"`
	Limit        int                 `json:"limit"`
	TopArtists   []string            `json:"top_artists"`
	TopTracks    []string            `json:"top_tracks"`
	TopGenres    []string            `json:"top_genres"`
}

// GetRecommendations handles POST /recommendations.
//
// Personal preferences come from the caller's Spotify token when an
// Authorization header is present, else from the track lists in the
// body. An empty personal profile falls back to the global defaults
// inside the service.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MoodAnalysis.Mood == "" {
		writeError(w, http.StatusBadRequest, "mood_analysis.mood is required")
		return
	}

	personal := domain.NewPreferenceSet(req.TopGenres, req.TopArtists, req.TopTracks)
	if token := bearerToken(r); token != "" && h.prefs != nil {
		prefs, err := h.prefs.PreferencesFromToken(r.Context(), token, 10)
		if err != nil {
			// Degrade to the body-supplied (possibly empty) profile.
			log.Printf("WARN rest: preference fetch failed: %v", err)
		} else {
			personal = prefs
		}
	}

	pair, err := h.recommender.Recommend(r.Context(), req.MoodAnalysis, personal, services.DefaultPreferences(), req.Limit)
	if err != nil {
		writeRecommendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

type chatRequest struct {
	Message      string               `json:"message"`
	MoodAnalysis *domain.MoodAnalysis `json:"mood_analysis,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.recommender.Chat(r.Context(), req.Message, req.MoodAnalysis)
	if err != nil {
		writeRecommendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func writeRecommendError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrTimeout) {
		writeError(w, http.StatusGatewayTimeout, "recommendation timed out, please try again")
		return
	}
	if errors.Is(err, ports.ErrUpstream) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
