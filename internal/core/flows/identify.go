package flows

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/core/common"
	"github.com/agenthands/labscan/internal/core/model"
	"github.com/agenthands/labscan/internal/core/schema"
	"github.com/agenthands/labscan/internal/llm"
	"github.com/agenthands/labscan/internal/media"
)

// identifyReply mirrors model.Identification with the verdict as a pointer
// so a reply that omits it can be told apart from an explicit false.
type identifyReply struct {
	EquipmentName         string  `json:"equipmentName"`
	Description           string  `json:"description"`
	Category              string  `json:"category"`
	IsLaboratoryEquipment *bool   `json:"isLaboratoryEquipment"`
	RejectionReason       *string `json:"rejectionReason"`
}

type Identifier struct {
	Model         llm.VisionClient
	Prompt        string
	Timeout       time.Duration
	MaxImageBytes int64
}

func NewIdentifier(client llm.VisionClient, prompt string, timeout time.Duration, maxImageBytes int64) *Identifier {
	return &Identifier{
		Model:         client,
		Prompt:        prompt,
		Timeout:       timeout,
		MaxImageBytes: maxImageBytes,
	}
}

// IdentifyEquipment asks the model what the photo shows. The result always
// satisfies: lab equipment has no rejection reason, anything else carries
// the fixed rejected name/description/category and a non-empty reason.
// Bad input is ErrValidation; a reply that breaks those rules is
// ErrModelCall.
func (i *Identifier) IdentifyEquipment(ctx context.Context, in model.IdentifyInput) (model.Identification, error) {
	if err := schema.Validate(in); err != nil {
		return model.Identification{}, err
	}
	img, err := media.ParseDataURI(in.PhotoDataURI, i.MaxImageBytes)
	if err != nil {
		return model.Identification{}, err
	}
	return i.IdentifyImage(ctx, img)
}

// IdentifyImage is IdentifyEquipment for an already decoded frame.
func (i *Identifier) IdentifyImage(ctx context.Context, img media.Image) (model.Identification, error) {
	ctx, cancel := withTimeout(ctx, i.Timeout)
	defer cancel()

	response, err := llm.GenerateWithImageStructured(ctx, i.Model, i.Prompt, img, IdentifyReplySchema)
	if err != nil {
		return model.Identification{}, apperr.Model(err, "identify equipment")
	}

	reply, err := common.ParseJSON[identifyReply](response)
	if err != nil {
		return model.Identification{}, apperr.Model(err, "identify reply")
	}

	result, err := normalize(reply)
	if err != nil {
		return model.Identification{}, apperr.Model(err, "identify reply")
	}
	if err := schema.Check(result); err != nil {
		return model.Identification{}, apperr.Model(err, "identify reply")
	}
	return result, nil
}

func normalize(r identifyReply) (model.Identification, error) {
	if r.IsLaboratoryEquipment == nil {
		return model.Identification{}, errors.New("isLaboratoryEquipment is required")
	}

	if *r.IsLaboratoryEquipment {
		return model.Identification{
			EquipmentName:         strings.TrimSpace(r.EquipmentName),
			Description:           strings.TrimSpace(r.Description),
			Category:              strings.TrimSpace(r.Category),
			IsLaboratoryEquipment: true,
		}, nil
	}

	if r.RejectionReason == nil || strings.TrimSpace(*r.RejectionReason) == "" {
		return model.Identification{}, errors.New("rejectionReason is required when isLaboratoryEquipment is false")
	}
	reason := strings.TrimSpace(*r.RejectionReason)
	return model.Identification{
		EquipmentName:         model.RejectedName,
		Description:           model.RejectedDescription,
		Category:              model.RejectedCategory,
		IsLaboratoryEquipment: false,
		RejectionReason:       &reason,
	}, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
