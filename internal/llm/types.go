package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned before any network I/O when the provider has
// no API credential.
var ErrNotConfigured = errors.New("llm provider not configured: missing API key")

type Provider interface {
	// Complete sends one prompt to the completion service and returns the
	// raw response text. It performs no retries.
	Complete(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

func WithMaxTokens(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

type Response struct {
	Content string
	Model   string
	Usage   Usage
}
