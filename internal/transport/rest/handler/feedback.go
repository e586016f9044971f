package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"surveylab/internal/model"
	"surveylab/internal/service"
)

// FeedbackHandler handles the vote and rating counters
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// Vote handles POST /api/feedback
func (h *FeedbackHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req model.FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	totals, err := h.feedbackSvc.IncrementYesNo(r.Context(), req.Feedback)
	if errors.Is(err, service.ErrInvalidFeedback) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update feedback", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save feedback")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// Rate handles POST /api/star-feedback
func (h *FeedbackHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req model.StarFeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Rating == nil {
		// strings and fractions fail to decode into an int
		writeError(w, http.StatusBadRequest, service.ErrInvalidRating.Error())
		return
	}

	totals, err := h.feedbackSvc.IncrementStar(r.Context(), *req.Rating)
	if errors.Is(err, service.ErrInvalidRating) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update star feedback", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save rating")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// Totals handles GET /api/feedback
func (h *FeedbackHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.feedbackSvc.YesNoTotals(r.Context())
	if err != nil {
		slog.Error("failed to read feedback", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read feedback")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// StarTotals handles GET /api/star-feedback
func (h *FeedbackHandler) StarTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.feedbackSvc.StarTotals(r.Context())
	if err != nil {
		slog.Error("failed to read star feedback", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read ratings")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}
