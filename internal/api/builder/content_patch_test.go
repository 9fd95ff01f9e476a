package builderapi

import (
	"encoding/json"
	"testing"

	"highlaunchpad/internal/domain/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyContentPatchTopLevelField(t *testing.T) {
	props, _ := builder.DefaultProps(builder.KindHero)

	patched, err := applyContentPatch(props, "title", json.RawMessage(`"New Title"`), "", nil)
	require.NoError(t, err)

	content, ok := builder.DecodeContent(builder.KindHero, patched)
	require.True(t, ok)
	hero := content.(builder.HeroContent)
	assert.Equal(t, "New Title", hero.Title)
	assert.Equal(t, "Everything you need to build, market and sell online.", hero.Subtitle)
}

func TestApplyContentPatchArrayElementOnly(t *testing.T) {
	props, _ := builder.DefaultProps(builder.KindPricing)

	idx := 1
	patched, err := applyContentPatch(props, "price", json.RawMessage(`"$197"`), "tiers", &idx)
	require.NoError(t, err)

	content, ok := builder.DecodeContent(builder.KindPricing, patched)
	require.True(t, ok)
	pricing := content.(builder.PricingContent)

	require.Len(t, pricing.Tiers, 2)
	assert.Equal(t, "$197", pricing.Tiers[1].Price)
	// sibling element untouched
	assert.Equal(t, "$29", pricing.Tiers[0].Price)
	// sibling fields of the patched element untouched
	assert.Equal(t, "Pro", pricing.Tiers[1].Name)
	assert.Equal(t, []string{"Unlimited funnels", "Full CRM", "AI copy tools"}, pricing.Tiers[1].Features)
	// top-level fields untouched
	assert.Equal(t, "Simple Pricing", pricing.Title)
}

func TestApplyContentPatchIndexOutOfRange(t *testing.T) {
	props, _ := builder.DefaultProps(builder.KindPricing)

	idx := 5
	_, err := applyContentPatch(props, "price", json.RawMessage(`"$1"`), "tiers", &idx)
	assert.Error(t, err)

	idx = -1
	_, err = applyContentPatch(props, "price", json.RawMessage(`"$1"`), "tiers", &idx)
	assert.Error(t, err)
}

func TestApplyContentPatchMissingField(t *testing.T) {
	_, err := applyContentPatch([]byte(`{}`), "", json.RawMessage(`"x"`), "", nil)
	assert.Error(t, err)
}

func TestApplyContentPatchNonArrayParent(t *testing.T) {
	idx := 0
	_, err := applyContentPatch([]byte(`{"tiers":"oops"}`), "price", json.RawMessage(`"$1"`), "tiers", &idx)
	assert.Error(t, err)
}
