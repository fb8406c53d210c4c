package pipeline

import (
	"context"
	"sync/atomic"
)

// MockClient is a model binding stub returning a fixed response.
type MockClient struct {
	Response string
	Err      error
	Calls    atomic.Int64
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
