package rest

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/vibematch/backend/internal/core/ports"
	"github.com/vibematch/backend/internal/core/services"
)

// Handler manages the thin HTTP interface over the core services.
type Handler struct {
	recommender *services.Recommender
	beats       *services.BeatService
	search      *services.SearchService
	media       *services.MediaService
	prefs       ports.PreferenceSource // optional
	router      *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. prefs may
// be nil; personal preferences then come only from the request body.
func NewHandler(recommender *services.Recommender, beats *services.BeatService, search *services.SearchService, media *services.MediaService, prefs ports.PreferenceSource) *Handler {
	h := &Handler{
		recommender: recommender,
		beats:       beats,
		search:      search,
		media:       media,
		prefs:       prefs,
		router:      http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /recommendations", h.GetRecommendations)
	h.router.HandleFunc("POST /chat", h.Chat)
	h.router.HandleFunc("POST /beats", h.GenerateBeat)
	h.router.HandleFunc("GET /beats/{id}", h.GenerateBeatStatus)
	h.router.HandleFunc("GET /search", h.SearchTracks)
	h.router.HandleFunc("GET /media/{id}", h.GetMedia)
	h.router.HandleFunc("POST /tracks/saved", h.SaveTrack)
	h.router.HandleFunc("GET /tracks/saved", h.ListSavedTracks)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func isJSONContentType(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
