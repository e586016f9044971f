package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"surveylab/internal/llm"
	"surveylab/internal/model"
	"surveylab/internal/service"
)

// TextHandler exposes the summarization endpoints
type TextHandler struct {
	textSvc *service.TextService
}

// NewTextHandler creates a new text handler
func NewTextHandler(textSvc *service.TextService) *TextHandler {
	return &TextHandler{textSvc: textSvc}
}

// Summarize handles POST /api/summarize
func (h *TextHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req model.TextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.textSvc.Summarize(r.Context(), req.Data.Text)
	if err != nil {
		writeTextError(w, "summarize", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

// CoreSummary handles POST /api/core-summary
func (h *TextHandler) CoreSummary(w http.ResponseWriter, r *http.Request) {
	var req model.TextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.textSvc.CoreSummary(r.Context(), req.Data.Text)
	if err != nil {
		writeTextError(w, "core-summary", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

// SampleText handles GET /api/sample-text
func (h *TextHandler) SampleText(w http.ResponseWriter, r *http.Request) {
	text, err := h.textSvc.SampleText(r.Context())
	if err != nil {
		writeTextError(w, "sample-text", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func writeTextError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyText), errors.Is(err, service.ErrTextTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, llm.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("text generation failed", "op", op, "error", err)
		writeError(w, http.StatusBadGateway, "text generation failed")
	}
}
