package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/agenthands/labscan/internal/media"
)

type GeminiClient struct {
	client *genai.Client
	model  string
	opts   Options
}

func NewGeminiClient(ctx context.Context, apiKey string, model string, opts Options) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		model:  model,
		opts:   opts,
	}, nil
}

func (c *GeminiClient) generativeModel(schema *Schema) *genai.GenerativeModel {
	model := c.client.GenerativeModel(c.model)
	c.configure(model, schema)
	return model
}

func (c *GeminiClient) configure(model *genai.GenerativeModel, schema *Schema) {
	if c.opts.JSON || schema != nil {
		model.ResponseMIMEType = "application/json"
	}
	if schema != nil {
		model.ResponseSchema = geminiSchema(schema)
	}
	if c.opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.opts.MaxTokens))
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.GenerateStructured(ctx, prompt, nil)
}

func (c *GeminiClient) GenerateWithImage(ctx context.Context, prompt string, image media.Image) (string, error) {
	return c.GenerateWithImageStructured(ctx, prompt, image, nil)
}

func (c *GeminiClient) GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	resp, err := c.generativeModel(schema).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return geminiText(resp)
}

func (c *GeminiClient) GenerateWithImageStructured(ctx context.Context, prompt string, image media.Image, schema *Schema) (string, error) {
	resp, err := c.generativeModel(schema).GenerateContent(ctx,
		genai.Text(prompt),
		genai.Blob{MIMEType: image.MIMEType, Data: image.Data},
	)
	if err != nil {
		return "", err
	}
	return geminiText(resp)
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates or content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text in response candidate")
	}
	return sb.String(), nil
}

func geminiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        geminiType(s.Type),
		Description: s.Description,
		Nullable:    s.Nullable,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = geminiSchema(p)
		}
	}
	return out
}

func geminiType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
