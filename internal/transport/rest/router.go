package rest

import (
	"log/slog"
	"net/http"

	"surveylab/internal/service"
	"surveylab/internal/transport/rest/handler"
	"surveylab/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	PageService     *service.PageService
	ResponseService *service.ResponseService
	FeedbackService *service.FeedbackService
	TextService     *service.TextService
	CORSOrigins     []string
	Logger          *slog.Logger
}

// NewRouter creates the HTTP router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	pageHandler := handler.NewPageHandler(c.PageService, c.ResponseService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)
	textHandler := handler.NewTextHandler(c.TextService)

	r.Use(middleware.Logging(c.Logger))
	r.Use(middleware.CORS(c.CORSOrigins))

	// Survey pages
	r.HandleFunc("/", pageHandler.Home).Methods("GET")
	r.HandleFunc("/page", pageHandler.Page).Methods("GET")
	r.HandleFunc("/post", pageHandler.Submit).Methods("POST", "OPTIONS")

	// Counters
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/feedback", feedbackHandler.Vote).Methods("POST", "OPTIONS")
	api.HandleFunc("/feedback", feedbackHandler.Totals).Methods("GET")
	api.HandleFunc("/star-feedback", feedbackHandler.Rate).Methods("POST", "OPTIONS")
	api.HandleFunc("/star-feedback", feedbackHandler.StarTotals).Methods("GET")

	// Text generation
	api.HandleFunc("/summarize", textHandler.Summarize).Methods("POST", "OPTIONS")
	api.HandleFunc("/core-summary", textHandler.CoreSummary).Methods("POST", "OPTIONS")
	api.HandleFunc("/sample-text", textHandler.SampleText).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.PathPrefix("/static/").Handler(handler.Static("/static/"))

	return r
}
