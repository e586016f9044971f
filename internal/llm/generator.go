// Package llm wraps the text-generation API behind a one-method interface so
// callers can be tested without network access.
package llm

import (
	"context"
	"log/slog"

	"surveylab/internal/config"
)

// Generator produces text from a prompt.
type Generator interface {
	// Generate sends prompt to the model and returns its text output.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelID returns the model identifier this generator is configured to use.
	ModelID() string
}

// New builds the generator described by cfg. Without an API key the result
// is a Disabled generator that fails every call with ErrNotConfigured.
// The returned generator is wrapped with request logging.
func New(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (Generator, error) {
	var base Generator
	if cfg.IsEnabled() {
		g, err := NewGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		base = g
	} else {
		base = Disabled{}
	}
	return WithLogging(base, logger), nil
}

// Disabled is used when no API key is configured.
type Disabled struct{}

// Generate always returns ErrNotConfigured.
func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// ModelID returns "disabled".
func (Disabled) ModelID() string { return "disabled" }
