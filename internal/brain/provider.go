// Package brain talks to chat-completion style LLM APIs.
package brain

import (
	"context"
)

// Provider is the interface for LLM providers
type Provider interface {
	// Name returns the provider name (e.g., "groq", "other")
	Name() string

	// Available returns true if the provider is configured and ready
	Available() bool

	// Generate sends a prompt and returns the response
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is a prompt request to a provider
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
	JSONMode     bool // ask for a single JSON object
}

// Response is the provider's response
type Response struct {
	Content     string
	Model       string
	RawResponse string // raw API response body, for logging
}
