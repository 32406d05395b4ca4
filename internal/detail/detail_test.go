package detail

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/catalog"
	"github.com/agenthands/labscan/internal/handoff"
	"github.com/agenthands/labscan/internal/voice"
)

func TestBuildFromCatalogLink(t *testing.T) {
	b := NewBuilder(handoff.NewMemoryStore(time.Minute), nil)

	ref, err := catalog.ParseLink(catalog.Link(catalog.Ref{Name: "Petri Dish", Description: "A shallow dish.", Category: "Biology"}))
	require.NoError(t, err)

	v, err := b.Build(context.Background(), "", ref.Name, url.Values{
		"description": {ref.Description},
		"category":    {ref.Category},
	})
	require.NoError(t, err)

	assert.Equal(t, "Petri Dish", v.EquipmentName)
	assert.Equal(t, "Biology", v.Category)
	assert.False(t, v.AutoPlay)
	assert.Empty(t, v.CapturedImage)
	assert.False(t, v.FromCatalog)
	assert.Equal(t, "Equipment identified: Petri Dish. Category: Biology. Description: A shallow dish.", v.Narration)
	assert.Equal(t, voice.DefaultSettings, v.Speech)
}

func TestBuildWithoutDescription(t *testing.T) {
	b := NewBuilder(handoff.NewMemoryStore(time.Minute), nil)
	v, err := b.Build(context.Background(), "", "Funnel", url.Values{})
	require.NoError(t, err)
	assert.True(t, v.FromCatalog)
	assert.Contains(t, v.Narration, "This is a catalog entry for Funnel.")
}

func TestBuildConsumesHandoffOnce(t *testing.T) {
	ctx := context.Background()
	store := handoff.NewMemoryStore(time.Minute)
	session := handoff.NewSession()
	require.NoError(t, store.Put(ctx, session, handoff.KeyCapturedImage, "data:image/jpeg;base64,AAAA"))
	require.NoError(t, store.Put(ctx, session, handoff.KeyAutoPlayAudio, "true"))

	b := NewBuilder(store, nil)
	q := url.Values{"description": {"A beaker."}, "category": {"Glassware"}}

	first, err := b.Build(ctx, session, "Beaker", q)
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", first.CapturedImage)
	assert.True(t, first.AutoPlay)

	second, err := b.Build(ctx, session, "Beaker", q)
	require.NoError(t, err)
	assert.Empty(t, second.CapturedImage)
	assert.False(t, second.AutoPlay)
}

func TestBuildValidation(t *testing.T) {
	b := NewBuilder(handoff.NewMemoryStore(time.Minute), nil)

	_, err := b.Build(context.Background(), "", "  ", url.Values{})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = b.Build(context.Background(), "not-a-session", "Beaker", url.Values{})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestBuildKeepsLinkTextExactly(t *testing.T) {
	b := NewBuilder(handoff.NewMemoryStore(time.Minute), nil)
	want := catalog.Ref{Name: " Ring Stand", Description: "  padded  ", Category: "General "}

	u, err := url.Parse(catalog.Link(want))
	require.NoError(t, err)
	ref, err := catalog.ParseLink(catalog.Link(want))
	require.NoError(t, err)

	v, err := b.Build(context.Background(), "", ref.Name, u.Query())
	require.NoError(t, err)
	assert.Equal(t, want.Name, v.EquipmentName)
	assert.Equal(t, want.Description, v.Description)
	assert.Equal(t, want.Category, v.Category)

	_, err = b.Build(context.Background(), "", "   ", nil)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
