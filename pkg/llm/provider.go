package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(max int) Option {
	return func(o *Options) {
		o.MaxTokens = max
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for a chat/embedding capable LLM backend.
//
// IsAvailable must be cheap and side-effect free; callers check it per
// request. Chat and Embed return errors to this package's direct callers
// only; the generation layer above converts every failure into a fallback
// value, so nothing upstream ever branches on a generation error.
type Provider interface {
	// IsAvailable reports whether generation is enabled, configured with an
	// API key, and the underlying client initialized without error.
	IsAvailable() bool

	// Chat sends a chat history to the model and returns the response text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Embed returns the embedding vector for text, or nil for
	// empty/whitespace-only input.
	Embed(ctx context.Context, text string) ([]float32, error)
}
