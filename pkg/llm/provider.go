package llm

import (
	"context"
	"errors"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var ErrNotConfigured = errors.New("llm provider not configured")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func ApplyOptions(opts []Option) *Options {
	options := &Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Conversation is what a provider receives: a system instruction, prior
// turns and the new prompt.
type Conversation struct {
	System  string
	History []Message
	Prompt  string
}

// Stream yields reply fragments in arrival order. Next returns io.EOF once
// the reply is complete; any other error is terminal.
type Stream interface {
	Next() (string, error)
	Close() error
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// ChatStream opens a streamed reply. An error here means nothing was
	// received from the provider.
	ChatStream(ctx context.Context, conv Conversation, options ...Option) (Stream, error)

	// Name identifies the backend in logs
	Name() string
}
