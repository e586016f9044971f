// Package app wires configuration into repositories, services and the router.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"surveylab/internal/config"
	"surveylab/internal/llm"
	"surveylab/internal/model"
	"surveylab/internal/repository"
	"surveylab/internal/service"
	"surveylab/internal/transport/rest"
)

type App struct {
	Config       config.Config
	QuestionRepo repository.QuestionRepo
	ResponseRepo repository.ResponseRepo
	YesNoRepo    repository.CounterRepo
	StarRepo     repository.CounterRepo

	Pages     *service.PageService
	Responses *service.ResponseService
	Feedback  *service.FeedbackService
	Text      *service.TextService

	Logger *slog.Logger
}

// New builds the application. Storage directories are created and the
// counter files are initialized before it returns.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	gen, err := llm.New(ctx, cfg.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("init text generator: %w", err)
	}
	return NewWithGenerator(ctx, cfg, gen, logger)
}

// NewWithGenerator is New with a caller-supplied generator.
func NewWithGenerator(ctx context.Context, cfg config.Config, gen llm.Generator, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dirs := []string{
		cfg.Storage.ResultsDir,
		filepath.Dir(cfg.Storage.FeedbackFile),
		filepath.Dir(cfg.Storage.StarFeedbackFile),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	a := &App{
		Config:       cfg,
		QuestionRepo: repository.NewQuestionRepo(cfg.Storage.QuestionsDir, logger),
		ResponseRepo: repository.NewResponseRepo(cfg.Storage.ResultsDir),
		YesNoRepo:    repository.NewCounterRepo(cfg.Storage.FeedbackFile, model.YesNoCategories(), logger),
		StarRepo:     repository.NewCounterRepo(cfg.Storage.StarFeedbackFile, model.StarCategories(), logger),
		Logger:       logger,
	}

	a.Pages = service.NewPageService(a.QuestionRepo)
	a.Responses = service.NewResponseService(a.ResponseRepo, logger)
	a.Feedback = service.NewFeedbackService(a.YesNoRepo, a.StarRepo)
	a.Text = service.NewTextService(gen, cfg.AI.Timeout())

	if err := a.Feedback.Init(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Router returns the HTTP handler for the application
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		PageService:     a.Pages,
		ResponseService: a.Responses,
		FeedbackService: a.Feedback,
		TextService:     a.Text,
		CORSOrigins:     a.Config.Server.CORSOrigins,
		Logger:          a.Logger,
	})
}
