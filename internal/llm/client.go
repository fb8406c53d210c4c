package llm

import (
	"context"
	"errors"
)

// ErrUnresolvedModel is returned when the configured backend identifier
// cannot be resolved to a callable client. This always surfaces at
// pipeline-assembly time, never during document processing.
var ErrUnresolvedModel = errors.New("llm: unresolved model backend")

// Client is the invocation contract for an LLM backend: send a prompt,
// get the raw completion back. Everything else about the backend (retries,
// timeouts, transport) is the client library's concern.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
