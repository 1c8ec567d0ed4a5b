package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests and offline demos.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	hold      chan struct{}
	started   chan struct{}
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Hold makes subsequent Generate calls block until Release is called or
// their context ends. Started receives one value per blocked call.
func (m *MockProvider) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hold = make(chan struct{})
	m.started = make(chan struct{}, 16)
}

// Started is signalled each time a held Generate call begins waiting.
func (m *MockProvider) Started() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Release unblocks every held Generate call.
func (m *MockProvider) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hold != nil {
		close(m.hold)
		m.hold = nil
	}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	hold, started := m.hold, m.started
	m.mu.Unlock()

	if hold != nil {
		started <- struct{}{}
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or false if none was made.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
