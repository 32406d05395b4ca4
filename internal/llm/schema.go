package llm

import (
	"context"

	"github.com/agenthands/labscan/internal/media"
)

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeString  SchemaType = "string"
	TypeBoolean SchemaType = "boolean"
)

// Schema describes the JSON a flow expects back from the model.
type Schema struct {
	Type        SchemaType
	Description string
	Nullable    bool
	Properties  map[string]*Schema
	Required    []string
}

// StructuredClient is implemented by providers that can constrain a reply
// to a schema. Replies are still validated by the caller.
type StructuredClient interface {
	GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error)
	GenerateWithImageStructured(ctx context.Context, prompt string, image media.Image, schema *Schema) (string, error)
}

// GenerateStructured uses the schema when c supports it and falls back to
// a plain request otherwise.
func GenerateStructured(ctx context.Context, c LLMClient, prompt string, schema *Schema) (string, error) {
	if sc, ok := c.(StructuredClient); ok {
		return sc.GenerateStructured(ctx, prompt, schema)
	}
	return c.Generate(ctx, prompt)
}

// GenerateWithImageStructured is GenerateStructured for image prompts.
func GenerateWithImageStructured(ctx context.Context, c VisionClient, prompt string, image media.Image, schema *Schema) (string, error) {
	if sc, ok := c.(StructuredClient); ok {
		return sc.GenerateWithImageStructured(ctx, prompt, image, schema)
	}
	return c.GenerateWithImage(ctx, prompt, image)
}
