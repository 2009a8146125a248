// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package battle scores simulated battles between characters.

Architecture:

  - Attribute synthesis: ten combat attributes derived deterministically
    from the character and series names, nudged by whatever signals the
    unification layer found (popularity, series rating, narrative role,
    abilities mined from the biography). Same inputs, same attributes —
    there is no randomness anywhere in this package.
  - Techniques: four named moves whose power comes from attribute pairs;
    canonical ability names from the biography replace generated names.
  - Environment: a fixed battlefield catalog; the battle picks the arena
    that advantages the combatants most evenly.
  - Scoring: weighted power level, environment synergy, ultimate technique,
    attribute balance, and opponent matchup folded into one score, plus an
    additive breakdown and a phase-by-phase narrative explaining it.
*/
package battle

import (
	"math"
	"strings"

	"github.com/taibuivan/kessen/internal/source"
)

// Attribute names one of the ten combat attributes.
type Attribute string

const (
	AttrStrength       Attribute = "strength"
	AttrSpeed          Attribute = "speed"
	AttrIntelligence   Attribute = "intelligence"
	AttrTechnique      Attribute = "technique"
	AttrEndurance      Attribute = "endurance"
	AttrSpecialAbility Attribute = "specialAbility"
	AttrDefense        Attribute = "defense"
	AttrExperience     Attribute = "experience"
	AttrAdaptability   Attribute = "adaptability"
	AttrWillpower      Attribute = "willpower"
)

// attributeOrder fixes the canonical iteration order. Every loop over
// attributes goes through this slice; iterating the map directly would
// leak map ordering into results that must be reproducible.
var attributeOrder = []Attribute{
	AttrStrength,
	AttrSpeed,
	AttrIntelligence,
	AttrTechnique,
	AttrEndurance,
	AttrSpecialAbility,
	AttrDefense,
	AttrExperience,
	AttrAdaptability,
	AttrWillpower,
}

// attributeOffsets are the per-attribute seed offsets, 1..10 in canonical
// order.
var attributeOffsets = map[Attribute]int{
	AttrStrength:       1,
	AttrSpeed:          2,
	AttrIntelligence:   3,
	AttrTechnique:      4,
	AttrEndurance:      5,
	AttrSpecialAbility: 6,
	AttrDefense:        7,
	AttrExperience:     8,
	AttrAdaptability:   9,
	AttrWillpower:      10,
}

// attributeWeights bias the overall power level toward the attributes that
// decide fights.
var attributeWeights = map[Attribute]float64{
	AttrStrength:       1.0,
	AttrSpeed:          1.0,
	AttrIntelligence:   1.0,
	AttrTechnique:      1.1,
	AttrEndurance:      0.9,
	AttrSpecialAbility: 1.2,
	AttrDefense:        0.9,
	AttrExperience:     1.1,
	AttrAdaptability:   0.8,
	AttrWillpower:      1.0,
}

// roleFactors grant bonuses by narrative role in the source series.
var roleFactors = map[string]map[Attribute]int{
	"main":       {AttrSpecialAbility: 10, AttrWillpower: 8},
	"supporting": {AttrTechnique: 5, AttrIntelligence: 5},
	"antagonist": {AttrStrength: 8, AttrSpecialAbility: 7},
	"villain":    {AttrStrength: 10, AttrSpecialAbility: 8},
}

// counterTable maps an attribute to the attribute that counters it.
var counterTable = map[Attribute]Attribute{
	AttrStrength:       AttrSpeed,
	AttrSpeed:          AttrTechnique,
	AttrIntelligence:   AttrWillpower,
	AttrTechnique:      AttrStrength,
	AttrEndurance:      AttrIntelligence,
	AttrSpecialAbility: AttrAdaptability,
	AttrDefense:        AttrSpecialAbility,
	AttrExperience:     AttrAdaptability,
	AttrAdaptability:   AttrExperience,
	AttrWillpower:      AttrDefense,
}

const (
	attributeFloor = 60
	attributeCeil  = 95
)

// # Seeds

// nameSeed sums the code points of a string. The same spelling always
// yields the same seed.
func nameSeed(value string) int {
	sum := 0
	for _, r := range value {
		sum += int(r)
	}
	return sum
}

// seeds derives the deterministic seed triple for a fighter.
func seeds(name, anime string) (nameSum, animeSum, combined int) {
	nameSum = nameSeed(name)
	animeSum = nameSeed(anime)
	combined = (nameSum * animeSum) % 1000
	return nameSum, animeSum, combined
}

// # Synthesis

// apiSignals are the upstream numbers that nudge attribute synthesis.
type apiSignals struct {
	popularity       int
	favorites        int
	seriesScore      int // 0-100
	seriesPopularity int
	role             string
	present          bool
}

// signalsFrom extracts the synthesis inputs from an enriched record and its
// resolved series.
func signalsFrom(record *source.CharacterRecord, series *source.SeriesRecord) apiSignals {
	if record == nil {
		return apiSignals{}
	}

	signals := apiSignals{
		// Both providers' popularity signal is a favorites count, so it
		// feeds both factors.
		popularity: record.Popularity,
		favorites:  record.Popularity,
		role:       record.Role,
		present:    true,
	}

	if series != nil {
		signals.seriesScore = series.Score
		signals.seriesPopularity = series.Popularity
	}

	return signals
}

// factors computed from the API signals. Each factor is capped so one
// runaway counter cannot dominate the synthesis.
func (signals apiSignals) factors() (popularity, favorites, rating, seriesPopularity int) {
	if signals.popularity > 0 {
		popularity = min(20, signals.popularity/100)
	}
	if signals.favorites > 0 {
		favorites = min(15, signals.favorites/50)
	}
	if signals.seriesScore > 0 {
		// The 0-100 score maps back to the provider's 0-10 rating scale
		// before centering on 5. Floored, so a sub-50 score penalizes a
		// full point, not a truncated one.
		rating = int(math.Floor(float64(signals.seriesScore-50) / 2))
	}
	if signals.seriesPopularity > 0 {
		seriesPopularity = min(10, signals.seriesPopularity/1000)
	}
	return popularity, favorites, rating, seriesPopularity
}

// synthesizeAttributes builds the ten attributes for one fighter.
//
// With no API signals the value is purely seed-driven:
// ((combined+offset) mod 36) + 60, landing in [60, 95]. With signals, a
// base of 70 plus the relevant factors is jittered by the seed
// (((combined+offset) mod 11) - 5) and clamped to the same range.
func synthesizeAttributes(name, anime string, signals apiSignals) map[Attribute]int {
	_, _, combined := seeds(name, anime)
	popularity, favorites, rating, seriesPopularity := signals.factors()
	role := roleFactors[strings.ToLower(signals.role)]

	bases := map[Attribute]int{
		AttrStrength:       70 + popularity + role[AttrStrength],
		AttrSpeed:          70 + favorites + role[AttrSpeed],
		AttrIntelligence:   70 + rating + role[AttrIntelligence],
		AttrTechnique:      70 + role[AttrTechnique],
		AttrEndurance:      70 + popularity + role[AttrEndurance],
		AttrSpecialAbility: 70 + favorites + rating + role[AttrSpecialAbility],
		AttrDefense:        70 + role[AttrDefense],
		AttrExperience:     70 + seriesPopularity + role[AttrExperience],
		AttrAdaptability:   70 + rating + role[AttrAdaptability],
		AttrWillpower:      70 + favorites + role[AttrWillpower],
	}

	attributes := make(map[Attribute]int, len(attributeOrder))
	for _, attribute := range attributeOrder {
		offset := attributeOffsets[attribute]
		if signals.present {
			jitter := ((combined + offset) % 11) - 5
			attributes[attribute] = clamp(bases[attribute]+jitter, attributeFloor, attributeCeil)
			continue
		}
		attributes[attribute] = ((combined + offset) % 36) + attributeFloor
	}

	return attributes
}

// powerLevel folds the attributes into one weighted average.
func powerLevel(attributes map[Attribute]int) int {
	weightedSum := 0.0
	totalWeight := 0.0

	for _, attribute := range attributeOrder {
		weight := attributeWeights[attribute]
		weightedSum += float64(attributes[attribute]) * weight
		totalWeight += weight
	}

	return int(weightedSum / totalWeight)
}

// sortedByValue returns the attributes ordered by value. Ties keep the
// canonical attribute order, which keeps matchup analysis reproducible.
func sortedByValue(attributes map[Attribute]int, descending bool) []Attribute {
	ordered := make([]Attribute, len(attributeOrder))
	copy(ordered, attributeOrder)

	// Insertion sort keeps equal elements in canonical order.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0; j-- {
			a, b := attributes[ordered[j-1]], attributes[ordered[j]]
			if (descending && b > a) || (!descending && b < a) {
				ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
				continue
			}
			break
		}
	}

	return ordered
}

func clamp(value, floor, ceil int) int {
	if value < floor {
		return floor
	}
	if value > ceil {
		return ceil
	}
	return value
}
