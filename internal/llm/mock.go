package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the Mock generator.
type MockResponse struct {
	Text string
	Err  error
}

// Mock is a deterministic Generator for testing.
// It returns canned responses in FIFO order and records all prompts.
type Mock struct {
	mu        sync.Mutex
	responses []MockResponse
	Prompts   []string
}

// NewMock creates a Mock with the given canned responses.
func NewMock(responses ...MockResponse) *Mock {
	return &Mock{responses: responses}
}

// Generate returns the next canned response, or ErrProviderUnavailable if the
// queue is empty. A done context wins over the queue.
func (m *Mock) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	if err := ctx.Err(); err != nil {
		return "", &ErrProviderUnavailable{Err: err}
	}
	if len(m.responses) == 0 {
		return "", &ErrProviderUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Text, nil
}

// ModelID returns "mock".
func (m *Mock) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
