package llm

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when text generation is requested without an API key.
var ErrNotConfigured = errors.New("text generation is not configured")

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("empty response from model")

// ErrProviderUnavailable indicates the provider is down, unreachable, rate
// limiting us, or did not answer before the deadline.
type ErrProviderUnavailable struct {
	StatusCode int
	Err        error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("text generation unavailable (status %d): %v", e.StatusCode, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("text generation unavailable: %v", e.Err)
	}
	return "text generation unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
