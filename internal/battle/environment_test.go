// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fighterWithAttributes(name string, values map[Attribute]int) *Fighter {
	attributes := make(map[Attribute]int, len(attributeOrder))
	for _, attribute := range attributeOrder {
		attributes[attribute] = 70
	}
	for attribute, value := range values {
		attributes[attribute] = value
	}
	return &Fighter{Name: name, Attributes: attributes}
}

func TestSelectEnvironment_MinimizesAdvantageGap(t *testing.T) {
	fighters := []*Fighter{
		fighterWithAttributes("speedster", map[Attribute]int{AttrSpeed: 95, AttrIntelligence: 90}),
		fighterWithAttributes("tank", map[Attribute]int{AttrEndurance: 95, AttrStrength: 90}),
	}

	selected := selectEnvironment(fighters)

	// Brute-force the catalog: no environment may have a smaller gap than
	// the selected one.
	selectedGap := favoredGap(selected, fighters)
	for _, environment := range environments {
		assert.GreaterOrEqual(t, favoredGap(environment, fighters), selectedGap, environment.Name)
	}
}

func TestSelectEnvironment_TieKeepsEarliestCatalogEntry(t *testing.T) {
	// Identical fighters give every environment a zero gap.
	fighters := []*Fighter{
		fighterWithAttributes("a", nil),
		fighterWithAttributes("b", nil),
	}

	selected := selectEnvironment(fighters)

	require.Equal(t, environments[0].Name, selected.Name)
}

func TestSelectEnvironment_SingleFighter(t *testing.T) {
	fighters := []*Fighter{
		fighterWithAttributes("solo", map[Attribute]int{AttrSpeed: 95}),
	}

	// One fighter means every gap is zero; the earliest entry wins.
	selected := selectEnvironment(fighters)
	assert.Equal(t, environments[0].Name, selected.Name)
}

func favoredGap(environment Environment, fighters []*Fighter) int {
	maxSum, minSum := 0, 0
	for i, fighter := range fighters {
		sum := 0
		for _, attribute := range environment.Favors {
			sum += fighter.Attributes[attribute]
		}
		if i == 0 || sum > maxSum {
			maxSum = sum
		}
		if i == 0 || sum < minSum {
			minSum = sum
		}
	}
	return maxSum - minSum
}
