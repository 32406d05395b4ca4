// Package detail assembles the equipment detail view from the link the
// user followed and whatever the capture step handed off.
package detail

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/handoff"
	"github.com/agenthands/labscan/internal/voice"
)

type View struct {
	EquipmentName string         `json:"equipmentName"`
	Description   string         `json:"description,omitempty"`
	Category      string         `json:"category,omitempty"`
	CapturedImage string         `json:"capturedImage,omitempty"`
	AutoPlay      bool           `json:"autoPlay"`
	Narration     string         `json:"narration"`
	Speech        voice.Settings `json:"speech"`
	// FromCatalog is true when the view has no description to read out.
	FromCatalog bool `json:"fromCatalog"`
}

type Builder struct {
	store handoff.Store
	log   *zap.Logger
}

func NewBuilder(store handoff.Store, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{store: store, log: log}
}

// Build renders the view for name with the description and category found
// in query, used exactly as the link carried them. When session is non-empty the captured image and auto-play
// flag are taken from the hand-off store, so a second Build for the same
// session shows neither.
func (b *Builder) Build(ctx context.Context, session, name string, query url.Values) (View, error) {
	if strings.TrimSpace(name) == "" {
		return View{}, apperr.Validation("equipment name is required")
	}

	v := View{
		EquipmentName: name,
		Description:   query.Get("description"),
		Category:      query.Get("category"),
		Speech:        voice.DefaultSettings,
	}
	v.FromCatalog = v.Description == ""
	v.Narration = voice.Narration(v.EquipmentName, v.Category, v.Description)

	if session == "" {
		return v, nil
	}

	img, ok, err := b.store.Take(ctx, session, handoff.KeyCapturedImage)
	if err != nil {
		return View{}, errors.Wrap(err, "take captured image")
	}
	if ok {
		v.CapturedImage = img
	}

	flag, ok, err := b.store.Take(ctx, session, handoff.KeyAutoPlayAudio)
	if err != nil {
		return View{}, errors.Wrap(err, "take auto-play flag")
	}
	v.AutoPlay = ok && flag == "true"

	b.log.Debug("detail view built",
		zap.String("equipment", name),
		zap.Bool("image", v.CapturedImage != ""),
		zap.Bool("auto_play", v.AutoPlay),
	)
	return v, nil
}
