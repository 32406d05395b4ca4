package llm

import (
	"context"

	"github.com/agenthands/labscan/internal/media"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type VisionClient interface {
	GenerateWithImage(ctx context.Context, prompt string, image media.Image) (string, error)
}

// Client is a hosted model that can answer both text and image prompts.
type Client interface {
	LLMClient
	VisionClient
}

// Options tune every request a client sends.
type Options struct {
	MaxTokens int
	// JSON asks providers that support it to constrain replies to a JSON
	// object.
	JSON bool
}
