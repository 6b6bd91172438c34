package service

import (
	"context"
	"errors"
)

// ErrDisabled reports that an LLM-backed operation was attempted without a
// configured API key. It is a configuration error, never retried.
var ErrDisabled = errors.New("OpenAI API is not enabled (missing API key)")

// ChatClient is the interface for prompt-in, prose-out LLM calls.
type ChatClient interface {
	// Complete sends a single-user-message chat completion and returns the
	// model's text.
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// EmbeddingClient is the interface for turning texts into vectors.
type EmbeddingClient interface {
	// CreateEmbeddings generates one embedding per input text, in order.
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Ensure OpenAIClient implements both client interfaces.
var (
	_ ChatClient      = (*OpenAIClient)(nil)
	_ EmbeddingClient = (*OpenAIClient)(nil)
)
