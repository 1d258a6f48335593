// HTTP handlers for speech generation and lookup.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/speechgate/internal/domain/speech"
)

// HeaderSpeechID carries the external id of a newly generated speech.
const HeaderSpeechID = "X-Speech-Id"

// SpeechService is the domain contract the handler depends on.
// *speech.Service satisfies it.
type SpeechService interface {
	Generate(ctx context.Context, prompt string) (speech.Record, error)
	Get(ctx context.Context, externalID string) (speech.Record, error)
}

// SpeechHandler handles HTTP requests for speeches.
type SpeechHandler struct {
	service SpeechService
}

// NewSpeechHandler creates a new SpeechHandler instance.
func NewSpeechHandler(service SpeechService) *SpeechHandler {
	return &SpeechHandler{service: service}
}

// GenerateSpeechRequest is the request body for POST /text.
type GenerateSpeechRequest struct {
	Input *string `json:"input"`
}

// SpeechResponse is the response body for both speech endpoints.
type SpeechResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func newSpeechResponse(rec speech.Record) SpeechResponse {
	return SpeechResponse{Title: speech.Title, Content: rec.GeneratedText}
}

// Generate handles POST /text.
func (h *SpeechHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateSpeechRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Input == nil || strings.TrimSpace(*req.Input) == "" {
		writeError(w, http.StatusBadRequest, "input is required")
		return
	}

	rec, svcErr := h.service.Generate(r.Context(), *req.Input)
	if svcErr != nil {
		writeServiceError(w, r, "generate speech", svcErr)
		return
	}

	w.Header().Set(HeaderSpeechID, rec.ExternalID)
	writeJSON(w, http.StatusOK, newSpeechResponse(rec))
}

// Get handles GET /text/{id}.
func (h *SpeechHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	rec, svcErr := h.service.Get(r.Context(), id)
	if svcErr != nil {
		writeServiceError(w, r, "get speech", svcErr)
		return
	}
	writeJSON(w, http.StatusOK, newSpeechResponse(rec))
}
