// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"fmt"
	"strings"
)

// Technique is one of a fighter's four named moves.
type Technique struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Power       int    `json:"power"`
	Description string `json:"description"`

	// Canonical marks names lifted from the character's actual biography
	// rather than generated.
	Canonical bool `json:"canonical,omitempty"`
}

const (
	TechniqueOffensive = "Offensive"
	TechniqueDefensive = "Defensive"
	TechniqueUtility   = "Utility/Support"
	TechniqueUltimate  = "Ultimate"
)

// # Name Material

var (
	techniqueAdjectives = []string{"Blazing", "Shadow", "Mystic", "Celestial", "Iron", "Swift", "Quantum", "Void", "Arctic", "Gale"}
	techniqueNouns      = []string{"Strike", "Guard", "Burst", "Aura", "Wave", "Step", "Illusion", "Edge", "Barrier", "Torrent"}
	ultimateAdjectives  = []string{"Final", "Omega", "Limitless", "Divine", "Forbidden", "Zero", "Cosmic", "Infinite", "Apex", "Nexus"}
	ultimateNouns       = []string{"Judgment", "Impact", "Domain", "Requiem", "Unleashed", "Genesis", "Oblivion", "Blast", "Annihilation", "Ascension"}
)

const (
	ultimatePowerCeil = 98
	canonicalNameMin  = 4
	canonicalNameMax  = 29
)

// buildTechniques derives the four techniques from the fighter's attributes
// and seeds. Slots 0, 1 and 3 take canonical names from mined abilities
// when usable ones exist.
func buildTechniques(name, anime string, attributes map[Attribute]int, abilities []string) []Technique {
	nameSum, animeSum, _ := seeds(name, anime)

	techniques := []Technique{
		{
			Name:  techniqueAdjectives[nameSum%len(techniqueAdjectives)] + " " + techniqueNouns[animeSum%len(techniqueNouns)],
			Type:  TechniqueOffensive,
			Power: min(attributeCeil, (attributes[AttrStrength]+attributes[AttrTechnique])/2),
		},
		{
			Name:  techniqueAdjectives[(nameSum+3)%len(techniqueAdjectives)] + " " + techniqueNouns[(animeSum+2)%len(techniqueNouns)],
			Type:  TechniqueDefensive,
			Power: min(attributeCeil, (attributes[AttrDefense]+attributes[AttrEndurance])/2),
		},
		{
			Name:  techniqueAdjectives[(nameSum+5)%len(techniqueAdjectives)] + " " + techniqueNouns[(animeSum+4)%len(techniqueNouns)],
			Type:  TechniqueUtility,
			Power: min(attributeCeil, (attributes[AttrIntelligence]+attributes[AttrAdaptability])/2),
		},
		{
			Name:  ultimateAdjectives[nameSum%len(ultimateAdjectives)] + " " + ultimateNouns[animeSum%len(ultimateNouns)],
			Type:  TechniqueUltimate,
			Power: min(ultimatePowerCeil, (attributes[AttrSpecialAbility]+attributes[AttrWillpower]+attributes[AttrTechnique])/3),
		},
	}

	// Mined ability sentences name the offensive, defensive and ultimate
	// slots, in that order.
	overrides := []int{0, 1, 3}
	for i, slot := range overrides {
		if i >= len(abilities) {
			break
		}
		if canonical, ok := canonicalName(abilities[i]); ok {
			techniques[slot].Name = canonical
			techniques[slot].Canonical = true
		}
	}

	for i := range techniques {
		techniques[i].Description = describeTechnique(techniques[i])
	}

	return techniques
}

// canonicalName trims an ability sentence down to a usable technique name:
// any leading "Label: " prefix goes, then everything from the first period.
func canonicalName(ability string) (string, bool) {
	trimmed := ability
	if colon := strings.Index(trimmed, ":"); colon >= 0 {
		trimmed = trimmed[colon+1:]
	}
	trimmed = strings.TrimSpace(trimmed)
	if period := strings.Index(trimmed, "."); period >= 0 {
		trimmed = trimmed[:period]
	}

	if len(trimmed) < canonicalNameMin || len(trimmed) > canonicalNameMax {
		return "", false
	}
	return trimmed, true
}

func describeTechnique(technique Technique) string {
	grade := "standard"
	switch {
	case technique.Power > 90:
		grade = "devastatingly"
	case technique.Power > 80:
		grade = "potent"
	}

	suffix := ""
	if technique.Canonical {
		suffix = " from the series"
	}

	return fmt.Sprintf("A %s %s technique%s.", grade, strings.ToLower(technique.Type), suffix)
}

// ultimateOf returns the fighter's ultimate technique.
func ultimateOf(techniques []Technique) Technique {
	for _, technique := range techniques {
		if technique.Type == TechniqueUltimate {
			return technique
		}
	}
	return Technique{}
}
