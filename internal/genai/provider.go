// Package genai is the boundary to the generative AI provider. Every failure
// leaving this package is one of the typed generation errors in package domain.
package genai

import (
	"context"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// TextRequest is a single text generation call.
type TextRequest struct {
	Prompt string
	// Schema, when set, asks the provider to constrain its answer to JSON
	// matching the definition.
	Schema     *jsonschema.Definition
	SchemaName string
}

// Provider generates text and images.
type Provider interface {
	// GenerateText returns the raw text of the first answer.
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	// GenerateImage returns a data URI or remote URL. An empty string with a
	// nil error means the provider declined to produce an image.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Disabled is used when no API key is configured. Every call fails, so
// callers run on placeholder content.
type Disabled struct{}

var _ Provider = Disabled{}

func (Disabled) GenerateText(context.Context, TextRequest) (string, error) {
	return "", domain.ProviderError{Msg: "AI provider not configured"}
}

func (Disabled) GenerateImage(context.Context, string) (string, error) {
	return "", domain.ProviderError{Msg: "AI provider not configured"}
}
