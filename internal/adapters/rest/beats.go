package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vibematch/backend/internal/core/ports"
)

type generateBeatRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateBeat handles POST /beats.
func (h *Handler) GenerateBeat(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req generateBeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	job, err := h.beats.Submit(r.Context(), req.Prompt)
	if err != nil {
		writeBeatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GenerateBeatStatus handles GET /beats/{id}.
func (h *Handler) GenerateBeatStatus(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	if requestID == "" {
		writeError(w, http.StatusBadRequest, "request id is required")
		return
	}

	job, err := h.beats.Poll(r.Context(), requestID)
	if err != nil {
		writeBeatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func writeBeatError(w http.ResponseWriter, err error) {
	if errors.Is(err, ports.ErrUpstream) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
