package ai

import "context"

// Provider abstracts the chat-completion endpoint so the assistant can be
// exercised against a fake in tests.
type Provider interface {
	// Complete sends a message list and returns either text or tool calls.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name (e.g., "groq").
	Name() string
}
