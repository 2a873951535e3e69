package rest

import (
	"errors"
	"net/http"

	"github.com/vibematch/backend/internal/core/ports"
)

// GetMedia handles GET /media/{id}, serving cached audio for an
// external media id and downloading it on first request.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	mediaID := r.PathValue("id")
	if mediaID == "" {
		writeError(w, http.StatusBadRequest, "media id is required")
		return
	}

	path, mimeType, err := h.media.Resolve(r.Context(), mediaID)
	if err != nil {
		if errors.Is(err, ports.ErrUpstream) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", mimeType)
	http.ServeFile(w, r, path)
}
