package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"surveylab/internal/model"
	"surveylab/internal/service"
	"surveylab/internal/transport/rest/middleware"
)

// PageHandler serves survey pages and accepts answers
type PageHandler struct {
	pages     *service.PageService
	responses *service.ResponseService
}

// NewPageHandler creates a new page handler
func NewPageHandler(pages *service.PageService, responses *service.ResponseService) *PageHandler {
	return &PageHandler{
		pages:     pages,
		responses: responses,
	}
}

type questionView struct {
	Question *model.Question
	Page     string
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/page", http.StatusFound)
}

// Page handles GET /page?page=<mask>
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	if page == "" {
		page = model.StartMask
	}

	q, err := h.pages.Select(r.Context(), page)
	switch {
	case errors.Is(err, service.ErrSurveyComplete):
		renderHTML(w, "complete.html", nil)
		return
	case errors.Is(err, model.ErrInvalidMask):
		http.Error(w, "invalid page parameter", http.StatusBadRequest)
		return
	case err != nil:
		slog.Error("failed to select question", "page", page, "error", err)
		http.Error(w, "failed to load questions", http.StatusInternalServerError)
		return
	}

	renderHTML(w, "question.html", questionView{Question: q, Page: page})
}

// Submit handles POST /post
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	fields := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	id := fields["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	page := fields["page"]
	if page == "" {
		page = model.StartMask
	}

	next, err := h.pages.Advance(page, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, err := h.responses.Record(r.Context(), fields, middleware.GetClientIP(r))
	if err != nil {
		slog.Error("failed to record response", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save response")
		return
	}

	writeJSON(w, http.StatusOK, model.SubmitResult{
		Message:     "Data saved successfully",
		Filename:    name,
		NextPage:    next,
		RedirectURL: "/page?" + url.Values{"page": {next}}.Encode(),
	})
}

func renderHTML(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
