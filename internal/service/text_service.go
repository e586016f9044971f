package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"surveylab/internal/llm"
)

// MaxInputRunes bounds the text accepted for summarization
const MaxInputRunes = 20000

var (
	// ErrEmptyText is returned when there is nothing to summarize
	ErrEmptyText = errors.New("text is required")
	// ErrTextTooLong is returned when the input exceeds MaxInputRunes
	ErrTextTooLong = fmt.Errorf("text must be at most %d characters", MaxInputRunes)
)

// TextService summarizes user text and produces sample passages
type TextService struct {
	gen     llm.Generator
	timeout time.Duration
}

// NewTextService creates a text service. Each generation call is bounded by timeout.
func NewTextService(gen llm.Generator, timeout time.Duration) *TextService {
	return &TextService{gen: gen, timeout: timeout}
}

// Summarize returns a short multi-sentence summary of text
func (s *TextService) Summarize(ctx context.Context, text string) (string, error) {
	text, err := checkInput(text)
	if err != nil {
		return "", err
	}
	return s.generate(llm.WithPurpose(ctx, "summarize"), buildSummarizePrompt(text))
}

// CoreSummary returns the one-sentence central claim of text
func (s *TextService) CoreSummary(ctx context.Context, text string) (string, error) {
	text, err := checkInput(text)
	if err != nil {
		return "", err
	}
	return s.generate(llm.WithPurpose(ctx, "core-summary"), buildCoreSummaryPrompt(text))
}

// SampleText returns a freshly generated practice passage
func (s *TextService) SampleText(ctx context.Context) (string, error) {
	return s.generate(llm.WithPurpose(ctx, "sample-text"), sampleTextPrompt)
}

func (s *TextService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return out, nil
}

func checkInput(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxInputRunes {
		return "", ErrTextTooLong
	}
	return text, nil
}
