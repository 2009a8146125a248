// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"regexp"
	"strings"
)

// # Ability Mining
//
// Biographies frequently name a character's powers in prose ("His devil
// fruit ability allows..."). Sentences containing a power keyword are
// harvested as abilities: they boost associated attributes and can lend
// their names to techniques.

// abilityKeywords are the power vocabularies worth harvesting sentences for.
var abilityKeywords = []string{
	"ability", "power", "skill", "technique", "quirk", "magic", "jutsu",
	"haki", "stand", "zanpakuto", "bankai", "sharingan", "devil fruit",
}

// sentencePatterns match, per keyword, the keyword up to the end of its
// sentence. Compiled once; the keyword list is fixed.
var sentencePatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(abilityKeywords))
	for i, keyword := range abilityKeywords {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword) + `[^.!?]*[.!?]`)
	}
	return patterns
}()

// attributeAffinities associate descriptive vocabulary with the attribute
// it hints at.
var attributeAffinities = map[Attribute][]string{
	AttrStrength:       {"strength", "power", "force", "might", "muscle", "physical", "giant", "titan", "hulk"},
	AttrSpeed:          {"speed", "fast", "quick", "agile", "swift", "flash", "teleport", "instant"},
	AttrIntelligence:   {"smart", "genius", "intellect", "strategy", "tactical", "mind", "brain", "iq"},
	AttrTechnique:      {"technique", "skill", "precision", "mastery", "expert", "proficient", "trained"},
	AttrEndurance:      {"endurance", "stamina", "durability", "resilient", "tough", "tank", "withstand"},
	AttrSpecialAbility: {"special", "unique", "power", "ability", "magic", "quirk", "jutsu", "haki", "stand", "zanpakuto", "bankai", "sharingan", "devil fruit"},
	AttrDefense:        {"defense", "shield", "armor", "protect", "guard", "block", "barrier"},
	AttrExperience:     {"experience", "veteran", "battle-hardened", "seasoned", "master", "expert"},
	AttrAdaptability:   {"adapt", "flexible", "versatile", "adjust", "evolve", "transform"},
	AttrWillpower:      {"will", "determination", "resolve", "spirit", "courage", "brave", "fearless"},
}

// abilityBoost is added per keyword-matched ability, never pushing an
// attribute past the ceiling.
const abilityBoost = 5

// maxDisplayedAbilities caps how many mined abilities a fighter keeps for
// presentation and technique naming.
const maxDisplayedAbilities = 3

// extractAbilities harvests ability sentences from a biography, in keyword
// order so results are stable.
func extractAbilities(biography string) []string {
	if biography == "" {
		return nil
	}

	var abilities []string
	for _, pattern := range sentencePatterns {
		abilities = append(abilities, pattern.FindAllString(biography, -1)...)
	}

	return abilities
}

// applyAbilityBoosts raises attributes whose affinity vocabulary appears in
// a mined ability. Every ability contributes, not just the displayed ones.
func applyAbilityBoosts(attributes map[Attribute]int, abilities []string) {
	for _, ability := range abilities {
		lowered := strings.ToLower(ability)
		for _, attribute := range attributeOrder {
			for _, keyword := range attributeAffinities[attribute] {
				if strings.Contains(lowered, keyword) {
					attributes[attribute] = min(attributeCeil, attributes[attribute]+abilityBoost)
					break
				}
			}
		}
	}
}
