package core

import (
	"context"
	"io"
	"net/url"

	"go.uber.org/zap"

	"github.com/agenthands/labscan/internal/capture"
	"github.com/agenthands/labscan/internal/catalog"
	"github.com/agenthands/labscan/internal/config"
	"github.com/agenthands/labscan/internal/core/flows"
	"github.com/agenthands/labscan/internal/core/model"
	"github.com/agenthands/labscan/internal/detail"
	"github.com/agenthands/labscan/internal/handoff"
	"github.com/agenthands/labscan/internal/llm"
	"github.com/agenthands/labscan/internal/qa"
)

// Assistant wires the two model flows to the catalog, capture, detail and
// question components.
type Assistant struct {
	Identifier *flows.Identifier
	Explainer  *flows.Explainer
	Handoff    handoff.Store
	Details    *detail.Builder
	Log        *zap.Logger

	client        llm.Client
	maxImageBytes int64
}

func NewAssistant(client llm.Client, store handoff.Store, cfg *config.Config, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.LLM.RequestTimeout.Duration

	return &Assistant{
		Identifier:    flows.NewIdentifier(client, cfg.Prompts.Identify, timeout, cfg.Server.MaxImageBytes),
		Explainer:     flows.NewExplainer(client, cfg.Prompts.Explain, timeout),
		Handoff:       store,
		Details:       detail.NewBuilder(store, log.Named("detail")),
		Log:           log,
		client:        client,
		maxImageBytes: cfg.Server.MaxImageBytes,
	}
}

// Identify runs the identify flow on a photo data URI.
func (a *Assistant) Identify(ctx context.Context, photoDataURI string) (model.Identification, error) {
	return a.Identifier.IdentifyEquipment(ctx, model.IdentifyInput{PhotoDataURI: photoDataURI})
}

// Explain answers one question, applying the panel's length rules first.
func (a *Assistant) Explain(ctx context.Context, equipmentName, query string) (string, error) {
	return qa.Ask(ctx, a.Explainer, equipmentName, query)
}

// NewScanner returns a scanner bound to this assistant's identify flow and
// hand-off store. Callers Open and Close it.
func (a *Assistant) NewScanner() *capture.Scanner {
	return capture.NewScanner(a.Identifier, a.Handoff, a.Log.Named("capture"))
}

// ScanUpload identifies one uploaded frame end to end. On failure hint is
// the inline message shown beside the capture control.
func (a *Assistant) ScanUpload(ctx context.Context, frame []byte) (res capture.Result, hint string, err error) {
	s := a.NewScanner()
	defer s.Close()

	if err := s.Open(ctx, capture.OpenUpload(frame, a.maxImageBytes)); err != nil {
		return capture.Result{}, s.Message(), err
	}
	res, err = s.Scan(ctx)
	if err != nil {
		return capture.Result{}, s.Message(), err
	}
	return res, "", nil
}

func (a *Assistant) Detail(ctx context.Context, session, name string, query url.Values) (detail.View, error) {
	return a.Details.Build(ctx, session, name, query)
}

func (a *Assistant) NewPanel(equipmentName string) *qa.Panel {
	return qa.NewPanel(a.Explainer, equipmentName)
}

// Catalog renders the catalog, optionally limited to one category.
func (a *Assistant) Catalog(category string) []catalog.Listing {
	if category == "" {
		return catalog.Render(catalog.All())
	}
	return catalog.Render(catalog.ByCategory(category))
}

// Close releases the hand-off store and, for providers that hold a
// connection, the model client.
func (a *Assistant) Close() error {
	err := a.Handoff.Close()
	if c, ok := a.client.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
