// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformAttributes(value int) map[Attribute]int {
	attributes := make(map[Attribute]int, len(attributeOrder))
	for _, attribute := range attributeOrder {
		attributes[attribute] = value
	}
	return attributes
}

func TestBuildTechniques_FourSlotsWithSeededNames(t *testing.T) {
	techniques := buildTechniques("Monkey D. Luffy", "One Piece", uniformAttributes(80), nil)

	require.Len(t, techniques, 4)
	assert.Equal(t, TechniqueOffensive, techniques[0].Type)
	assert.Equal(t, TechniqueDefensive, techniques[1].Type)
	assert.Equal(t, TechniqueUtility, techniques[2].Type)
	assert.Equal(t, TechniqueUltimate, techniques[3].Type)

	again := buildTechniques("Monkey D. Luffy", "One Piece", uniformAttributes(80), nil)
	assert.Equal(t, techniques, again)

	// Generated names come from the fixed word lists.
	for _, technique := range techniques[:3] {
		assert.False(t, technique.Canonical)
		assert.Contains(t, technique.Name, " ")
	}
}

func TestBuildTechniques_PowersAreAttributeMeans(t *testing.T) {
	attributes := uniformAttributes(70)
	attributes[AttrStrength] = 90
	attributes[AttrTechnique] = 80
	attributes[AttrSpecialAbility] = 95
	attributes[AttrWillpower] = 95

	techniques := buildTechniques("a", "b", attributes, nil)

	assert.Equal(t, (90+80)/2, techniques[0].Power)
	assert.Equal(t, (70+70)/2, techniques[1].Power)
	assert.Equal(t, (95+95+80)/3, techniques[3].Power)
}

func TestBuildTechniques_PowerCaps(t *testing.T) {
	techniques := buildTechniques("a", "b", uniformAttributes(95), nil)

	for _, technique := range techniques[:3] {
		assert.LessOrEqual(t, technique.Power, attributeCeil)
	}
	assert.LessOrEqual(t, techniques[3].Power, ultimatePowerCeil)
}

func TestBuildTechniques_CanonicalOverridesSlots(t *testing.T) {
	abilities := []string{
		"Ability: Gomu Gomu no Mi. Rubber body.",
		"Haki: Conqueror's spirit. Kingly will.",
		"Technique: Gear Fifth awakening. Peak form.",
	}

	techniques := buildTechniques("Monkey D. Luffy", "One Piece", uniformAttributes(80), abilities)

	assert.True(t, techniques[0].Canonical)
	assert.Equal(t, "Gomu Gomu no Mi", techniques[0].Name)
	assert.True(t, techniques[1].Canonical)
	assert.Equal(t, "Conqueror's spirit", techniques[1].Name)

	// The utility slot never takes a canonical name.
	assert.False(t, techniques[2].Canonical)

	assert.True(t, techniques[3].Canonical)
	assert.Equal(t, "Gear Fifth awakening", techniques[3].Name)
}

func TestDescribeTechnique_PowerBands(t *testing.T) {
	assert.Equal(t, "A standard offensive technique.",
		describeTechnique(Technique{Type: TechniqueOffensive, Power: 75}))
	assert.Equal(t, "A potent defensive technique.",
		describeTechnique(Technique{Type: TechniqueDefensive, Power: 85}))
	assert.Equal(t, "A devastatingly ultimate technique.",
		describeTechnique(Technique{Type: TechniqueUltimate, Power: 95}))
	assert.Equal(t, "A potent offensive technique from the series.",
		describeTechnique(Technique{Type: TechniqueOffensive, Power: 85, Canonical: true}))
}
