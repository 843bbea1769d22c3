package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/adapter/memory"
	"resto-ads/internal/core/port"
	"resto-ads/internal/core/tracking"
)

func TestGenerateMetaSavesLink(t *testing.T) {
	store := memory.New()
	u := NewTrackingUseCase(store, discardLogger())

	link, err := u.GenerateMeta(context.Background(), tracking.Params{
		RID:             7,
		PK:              3,
		PlatformID:      4,
		DestinationURL:  "https://bistro.example.com",
		OpportunitySlug: "lunch",
		CategoryCode:    "LU_ONS",
		Version:         2,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, ".pi1.pk3.ps"+tracking.MetaAdMacro, link.Components.C)
	assert.Equal(t, "meta", link.Components.UTMMedium)

	rid := int64(7)
	rows, err := u.List(context.Background(), &rid, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tracking.PlatformMeta, rows[0].PlatformID)
	assert.Equal(t, tracking.MetaAdMacro, rows[0].PlacementID)
	assert.Equal(t, "pk3-lunch", rows[0].UTMCampaign)
}

func TestGenerateWithoutSave(t *testing.T) {
	store := memory.New()
	u := NewTrackingUseCase(store, discardLogger())

	_, err := u.Generate(context.Background(), tracking.Params{
		RID: 1, PK: 1, PlatformID: 2, PlacementID: "search-1", DestinationURL: "https://a.example.com",
	}, false)
	require.NoError(t, err)

	rows, err := u.List(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGenerateValidation(t *testing.T) {
	u := NewTrackingUseCase(memory.New(), discardLogger())
	tests := map[string]tracking.Params{
		"missing rid":       {PK: 1, PlatformID: 1, PlacementID: "x", DestinationURL: "https://a.example.com"},
		"missing placement": {RID: 1, PK: 1, PlatformID: 1, DestinationURL: "https://a.example.com"},
		"relative url":      {RID: 1, PK: 1, PlatformID: 1, PlacementID: "x", DestinationURL: "/menu"},
	}
	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := u.Generate(context.Background(), p, true)
			assert.ErrorIs(t, err, port.ErrValidation)
		})
	}
}

func TestParseInvalidLink(t *testing.T) {
	u := NewTrackingUseCase(memory.New(), discardLogger())
	_, err := u.Parse("::not a url")
	assert.ErrorIs(t, err, port.ErrValidation)
	assert.Len(t, u.Platforms(), 5)
}
