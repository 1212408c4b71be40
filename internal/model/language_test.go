package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguagesCatalog(t *testing.T) {
	langs := Languages()
	assert.Len(t, langs, 12)
	assert.Equal(t, DefaultLanguageID, langs[0].ID)

	seen := make(map[string]bool)
	for _, l := range langs {
		assert.False(t, seen[l.ID], "duplicate id %q", l.ID)
		seen[l.ID] = true
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.Extension)
	}
}

func TestLanguageByID(t *testing.T) {
	lang, ok := LanguageByID("rust")
	require.True(t, ok)
	assert.Equal(t, "Rust", lang.Name)

	_, ok = LanguageByID("cobol")
	assert.False(t, ok)
}

func TestLanguageOrDefault(t *testing.T) {
	assert.Equal(t, "golang", LanguageOrDefault("golang").ID)
	// 未知语言回退到 Python，而不是报错
	assert.Equal(t, DefaultLanguageID, LanguageOrDefault("cobol").ID)
	assert.Equal(t, DefaultLanguageID, LanguageOrDefault("").ID)
}

func TestTierFromString(t *testing.T) {
	tier, ok := TierFromString("Advanced")
	assert.True(t, ok)
	assert.Equal(t, TierAdvanced, tier)

	tier, ok = TierFromString("wizard")
	assert.False(t, ok)
	assert.Equal(t, TierBeginner, tier)
}

func TestTierRankOrdering(t *testing.T) {
	assert.Less(t, TierBeginner.Rank(), TierIntermediate.Rank())
	assert.Less(t, TierIntermediate.Rank(), TierAdvanced.Rank())
	assert.Less(t, TierAdvanced.Rank(), TierExpert.Rank())
	// 未知水平排在最前
	assert.Equal(t, 0, ProficiencyTier("wizard").Rank())
}
