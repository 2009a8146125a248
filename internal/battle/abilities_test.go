// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAbilities_FindsKeywordSentences(t *testing.T) {
	biography := "Luffy is the captain of the Straw Hat Pirates. " +
		"His Devil Fruit ability turns his body to rubber. " +
		"He later awakens Conqueror's Haki in the war."

	abilities := extractAbilities(biography)

	// "ability", "haki" and "devil fruit" each harvest a sentence, in
	// keyword order.
	require.Len(t, abilities, 3)
	assert.Equal(t, "ability turns his body to rubber.", abilities[0])
	assert.Equal(t, "Haki in the war.", abilities[1])
	assert.Equal(t, "Devil Fruit ability turns his body to rubber.", abilities[2])
}

func TestExtractAbilities_EmptyBiography(t *testing.T) {
	assert.Empty(t, extractAbilities(""))
	assert.Empty(t, extractAbilities("A quiet farmhand with no notable traits."))
}

func TestExtractAbilities_KeywordOrderIsStable(t *testing.T) {
	// "power" appears later in the text than "haki" but earlier in the
	// keyword list, so its sentence is harvested first.
	biography := "Haki protects him. His power is immense."

	abilities := extractAbilities(biography)

	require.Len(t, abilities, 2)
	assert.Equal(t, "power is immense.", abilities[0])
	assert.Equal(t, "Haki protects him.", abilities[1])
}

func TestApplyAbilityBoosts_RaisesAssociatedAttributes(t *testing.T) {
	attributes := map[Attribute]int{}
	for _, attribute := range attributeOrder {
		attributes[attribute] = 70
	}

	applyAbilityBoosts(attributes, []string{"His speed lets him teleport across the field."})

	assert.Equal(t, 75, attributes[AttrSpeed])
	assert.Equal(t, 70, attributes[AttrStrength])
}

func TestApplyAbilityBoosts_CapsAtCeiling(t *testing.T) {
	attributes := map[Attribute]int{}
	for _, attribute := range attributeOrder {
		attributes[attribute] = 94
	}

	boosts := []string{
		"Incredible speed in close quarters.",
		"Unmatched speed at range.",
		"Blinding speed under pressure.",
	}
	applyAbilityBoosts(attributes, boosts)

	assert.Equal(t, attributeCeil, attributes[AttrSpeed])
}

func TestCanonicalName_TrimsLabelsAndSentences(t *testing.T) {
	name, ok := canonicalName("Devil Fruit: Gomu Gomu no Mi. It turns his body to rubber.")
	require.True(t, ok)
	assert.Equal(t, "Gomu Gomu no Mi", name)

	_, ok = canonicalName("ki.")
	assert.False(t, ok)

	_, ok = canonicalName("power that goes on and on far beyond any reasonable name length.")
	assert.False(t, ok)
}
