// Package llm adapts remote language-model APIs to one small contract.
package llm

import (
	"context"
	"errors"
	"strings"

	"maze/internal/memory"
)

// ErrRateLimited marks a failure worth retrying on another model (HTTP 429,
// quota or resource exhaustion).
var ErrRateLimited = errors.New("rate limited")

// ErrEmptyReply is returned when the model produced no text.
var ErrEmptyReply = errors.New("empty reply")

// Request is everything a provider needs for one generation.
type Request struct {
	System      string
	Turns       []memory.Turn
	MaxTokens   int
	Temperature float32
}

// Client generates a reply with the given model.
type Client interface {
	Name() string
	Generate(ctx context.Context, model string, req Request) (string, error)
}

// looksRateLimited is the last-resort classification for errors whose
// concrete type is unknown.
func looksRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "rate limit")
}
