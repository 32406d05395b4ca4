// Package qa is the question panel shown on the detail view.
package qa

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/core/model"
)

const (
	MinQueryLength = 10
	MaxQueryLength = 200
)

type Explainer interface {
	GetEquipmentDetails(ctx context.Context, in model.ExplainInput) (model.ExplainOutput, error)
}

// ValidateQuery applies the form rules locally, before any model call.
func ValidateQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	n := utf8.RuneCountInString(q)
	if n < MinQueryLength {
		return "", apperr.Validation("Your question must be at least %d characters long.", MinQueryLength)
	}
	if n > MaxQueryLength {
		return "", apperr.Validation("Your question must not be longer than %d characters.", MaxQueryLength)
	}
	return q, nil
}

// Ask validates query and forwards it to the explainer.
func Ask(ctx context.Context, e Explainer, equipmentName, query string) (string, error) {
	q, err := ValidateQuery(query)
	if err != nil {
		return "", err
	}
	out, err := e.GetEquipmentDetails(ctx, model.ExplainInput{EquipmentName: equipmentName, Query: q})
	if err != nil {
		return "", err
	}
	return out.Explanation, nil
}

// Panel keeps the one explanation currently on screen for an equipment.
type Panel struct {
	equipmentName string
	explainer     Explainer

	mu          sync.Mutex
	explanation string
	loading     bool
	seq         uint64
}

func NewPanel(e Explainer, equipmentName string) *Panel {
	return &Panel{equipmentName: equipmentName, explainer: e}
}

// Submit replaces the shown explanation with the answer to query. The old
// explanation is cleared as soon as a valid question is sent; on failure
// nothing is shown. If submissions overlap, the latest one wins.
func (p *Panel) Submit(ctx context.Context, query string) (string, error) {
	q, err := ValidateQuery(query)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.explanation = ""
	p.loading = true
	p.mu.Unlock()

	answer, err := Ask(ctx, p.explainer, p.equipmentName, q)

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return answer, err
	}
	p.loading = false
	if err != nil {
		return "", err
	}
	p.explanation = answer
	return answer, nil
}

// Explanation is what the panel currently shows, or "".
func (p *Panel) Explanation() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.explanation
}

func (p *Panel) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Panel) EquipmentName() string {
	return p.equipmentName
}
