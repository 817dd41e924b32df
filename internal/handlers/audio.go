package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/echovoice/apiserver/internal/services"
	"github.com/echovoice/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
)

// AudioHandler serves the language -> demo clip lookup backing the
// text-to-speech demo page.
type AudioHandler struct {
	logger       *slog.Logger
	audioService *services.AudioService
}

func NewAudioHandler(logger *slog.Logger, audioService *services.AudioService) *AudioHandler {
	return &AudioHandler{logger: logger, audioService: audioService}
}

// AudioRouter registers audio routes on the given router.
func AudioRouter(r chi.Router, handler *AudioHandler) {
	r.Get("/", handler.GetSample)
}

// GetSample returns the sample clip URL for ?lang=<language>.
func (h *AudioHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang")))
	if lang == "" {
		writeValidationError(w, map[string]string{"lang": "is required"})
		return
	}

	sample, err := h.audioService.GetByLanguage(r.Context(), lang)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "audio sample not found for language: "+lang)
			return
		}
		h.logger.Error("fetch audio sample", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, AudioResponse{
		Language:  sample.Language,
		AudioURL:  sample.URL,
		CreatedAt: sample.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: sample.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

type AudioResponse struct {
	Language  string `json:"language"`
	AudioURL  string `json:"audioUrl"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
