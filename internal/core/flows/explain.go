package flows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/core/common"
	"github.com/agenthands/labscan/internal/core/model"
	"github.com/agenthands/labscan/internal/core/schema"
	"github.com/agenthands/labscan/internal/llm"
)

type Explainer struct {
	LLM     llm.LLMClient
	Prompt  string
	Timeout time.Duration
}

func NewExplainer(client llm.LLMClient, prompt string, timeout time.Duration) *Explainer {
	return &Explainer{
		LLM:     client,
		Prompt:  prompt,
		Timeout: timeout,
	}
}

// GetEquipmentDetails answers a student's question about named equipment.
func (e *Explainer) GetEquipmentDetails(ctx context.Context, in model.ExplainInput) (model.ExplainOutput, error) {
	in.EquipmentName = strings.TrimSpace(in.EquipmentName)
	in.Query = strings.TrimSpace(in.Query)
	if err := schema.Validate(in); err != nil {
		return model.ExplainOutput{}, err
	}

	ctx, cancel := withTimeout(ctx, e.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(e.Prompt, in.EquipmentName, in.Query)
	response, err := llm.GenerateStructured(ctx, e.LLM, prompt, ExplainReplySchema)
	if err != nil {
		return model.ExplainOutput{}, apperr.Model(err, "explain equipment")
	}

	out, err := common.ParseJSON[model.ExplainOutput](response)
	if err != nil {
		return model.ExplainOutput{}, apperr.Model(err, "explain reply")
	}
	out.Explanation = strings.TrimSpace(out.Explanation)
	if err := schema.Check(out); err != nil {
		return model.ExplainOutput{}, apperr.Model(err, "explain reply")
	}
	return out, nil
}
