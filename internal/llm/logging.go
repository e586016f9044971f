package llm

import (
	"context"
	"log/slog"
	"time"
)

type purposeKey struct{}

// WithPurpose attaches a purpose label to the context for request logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

type loggingGenerator struct {
	inner  Generator
	logger *slog.Logger
}

// WithLogging wraps a Generator so every call is logged with its latency and outcome.
func WithLogging(g Generator, logger *slog.Logger) Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingGenerator{inner: g, logger: logger}
}

func (l *loggingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := l.inner.Generate(ctx, prompt)

	attrs := []any{
		"model", l.inner.ModelID(),
		"purpose", PurposeFrom(ctx),
		"latency_ms", time.Since(start).Milliseconds(),
		"prompt_chars", len(prompt),
	}
	if err != nil {
		l.logger.Error("text generation failed", append(attrs, "error", err)...)
		return "", err
	}
	l.logger.Info("text generated", append(attrs, "output_chars", len(text))...)
	return text, nil
}

func (l *loggingGenerator) ModelID() string {
	return l.inner.ModelID()
}
