// Package llm is the boundary with the external generation service. The rest
// of socialpost talks to a Client; GeminiClient is the production adapter.
package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when a client is built without credentials.
var ErrNoAPIKey = errors.New("generation API key not configured")

// Client generates text for a single prompt.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}

// Request is one call to the generation service.
type Request struct {
	Prompt string

	// Schema, when set, asks for JSON conforming to it.
	Schema *genai.Schema

	// MaxOutputTokens caps the response length. Zero leaves the model default.
	MaxOutputTokens int32

	// DisableThinking sets the thinking budget to zero, for short answers where
	// thinking tokens would eat the output budget.
	DisableThinking bool
}

// ClientFunc adapts a function to Client. Model reports "func".
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Generate(ctx context.Context, req Request) (string, error) { return f(ctx, req) }
func (f ClientFunc) Model() string                                            { return "func" }
