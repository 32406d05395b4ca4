package llm

import (
	"context"
	"sync"

	"github.com/agenthands/labscan/internal/media"
)

// MockClient replays canned responses. Calls are recorded so tests can
// assert that no request reached the model.
type MockClient struct {
	mu            sync.Mutex
	Response      string
	ResponseQueue []string
	Err           error
	Prompts       []string
	Images        []media.Image
	Schemas       []*Schema
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	return m.next(ctx)
}

func (m *MockClient) GenerateWithImage(ctx context.Context, prompt string, image media.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	m.Images = append(m.Images, image)
	return m.next(ctx)
}

func (m *MockClient) GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	m.Schemas = append(m.Schemas, schema)
	return m.next(ctx)
}

func (m *MockClient) GenerateWithImageStructured(ctx context.Context, prompt string, image media.Image, schema *Schema) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	m.Images = append(m.Images, image)
	m.Schemas = append(m.Schemas, schema)
	return m.next(ctx)
}

// Calls returns how many requests were made.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

func (m *MockClient) next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}
