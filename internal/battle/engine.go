// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/kessen/internal/platform/apperr"
	"github.com/taibuivan/kessen/internal/source"
)

const (
	minCombatants = 1
	maxCombatants = 4
)

// Enricher is the slice of the unification layer the engine consumes.
type Enricher interface {
	SearchCharacters(ctx context.Context, query string) ([]source.CharacterRecord, error)
	SearchSeries(ctx context.Context, query string) ([]source.SeriesRecord, error)
	GetCharacterDetails(ctx context.Context, record source.CharacterRecord) (source.CharacterRecord, error)
}

// Combatant is one battle entrant as the caller names them.
type Combatant struct {
	Name  string `json:"name"`
	Anime string `json:"anime"`
}

// Fighter is a combatant with synthesized battle state.
type Fighter struct {
	Name  string `json:"name"`
	Anime string `json:"anime"`

	// Record is the enriched character data, when the providers knew the
	// character at all.
	Record *source.CharacterRecord `json:"record,omitempty"`

	Attributes map[Attribute]int `json:"attributes"`
	PowerLevel int               `json:"powerLevel"`
	Abilities  []string          `json:"abilities,omitempty"`
	Techniques []Technique       `json:"techniques"`

	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown is the additive composition of a fighter's battle score.
type Breakdown struct {
	BasePower        float64 `json:"basePower"`
	EnvironmentBonus float64 `json:"environmentBonus"`
	TechniqueBonus   float64 `json:"techniqueBonus"`
	BalanceBonus     float64 `json:"balanceBonus"`
	MatchupBonus     float64 `json:"matchupBonus"`
}

// Result is the full outcome of one simulated battle, ranked winner first.
type Result struct {
	Winner         string          `json:"winner"`
	Environment    Environment     `json:"environment"`
	Combatants     []*Fighter      `json:"combatants"`
	Phases         []Phase         `json:"phases"`
	VictoryFactors []VictoryFactor `json:"victoryFactors"`
}

// Engine runs battle simulations.
type Engine struct {
	enricher Enricher
	log      *slog.Logger
}

// NewEngine builds an engine over the unification layer.
func NewEngine(enricher Enricher, log *slog.Logger) *Engine {
	return &Engine{
		enricher: enricher,
		log:      log.With(slog.String("component", "battle")),
	}
}

/*
Simulate runs one battle between the named combatants.

Description:
 1. Each combatant is enriched concurrently through the unification layer
    (character search, detail fetch, series search). Enrichment is
    best-effort; an unknown character still fights on seed-derived stats.
 2. Attributes, abilities and techniques are synthesized deterministically.
 3. The fairest environment is selected, composite scores are computed, and
    fighters are ranked (stable on ties, so input order breaks them).
 4. The narrative (phases and victory factors) explains the outcome.

Parameters:
  - ctx: context.Context
  - combatants: []Combatant (1 to 4 entrants; names must be non-empty)

Returns:
  - *Result: Ranked outcome with full breakdowns
  - error: apperr.ValidationError for a bad roster
*/
func (engine *Engine) Simulate(ctx context.Context, combatants []Combatant) (*Result, error) {
	if len(combatants) < minCombatants || len(combatants) > maxCombatants {
		return nil, apperr.ValidationError("A battle needs between 1 and 4 combatants")
	}
	for _, combatant := range combatants {
		if strings.TrimSpace(combatant.Name) == "" {
			return nil, apperr.ValidationError("Every combatant needs a name")
		}
	}

	fighters := make([]*Fighter, len(combatants))

	var wg sync.WaitGroup
	for i, combatant := range combatants {
		wg.Add(1)
		go func(i int, combatant Combatant) {
			defer wg.Done()
			fighters[i] = engine.prepareFighter(ctx, combatant)
		}(i, combatant)
	}
	wg.Wait()

	environment := selectEnvironment(fighters)
	engine.scoreFighters(fighters, environment)

	// Stable sort: equal scores keep roster order.
	sort.SliceStable(fighters, func(i, j int) bool {
		return fighters[i].Score > fighters[j].Score
	})

	result := &Result{
		Winner:         fighters[0].Name,
		Environment:    environment,
		Combatants:     fighters,
		Phases:         buildPhases(fighters, environment),
		VictoryFactors: buildVictoryFactors(fighters, environment),
	}

	engine.log.Info("battle_simulated",
		slog.Int("combatants", len(fighters)),
		slog.String("environment", environment.Name),
		slog.String("winner", result.Winner),
	)

	return result, nil
}

// prepareFighter enriches one combatant and synthesizes their battle state.
func (engine *Engine) prepareFighter(ctx context.Context, combatant Combatant) *Fighter {
	name := strings.TrimSpace(combatant.Name)
	anime := strings.TrimSpace(combatant.Anime)

	fighter := &Fighter{Name: name, Anime: anime}

	record, series := engine.enrich(ctx, name, anime)
	fighter.Record = record

	signals := signalsFrom(record, series)
	fighter.Attributes = synthesizeAttributes(name, anime, signals)

	if record != nil {
		abilities := extractAbilities(record.Description)
		applyAbilityBoosts(fighter.Attributes, abilities)
		if len(abilities) > maxDisplayedAbilities {
			abilities = abilities[:maxDisplayedAbilities]
		}
		fighter.Abilities = abilities
	}

	fighter.PowerLevel = powerLevel(fighter.Attributes)
	fighter.Techniques = buildTechniques(name, anime, fighter.Attributes, fighter.Abilities)

	return fighter
}

// enrich resolves a combatant against the unification layer: the character
// record they most plausibly are, and their series. Every step is
// best-effort.
func (engine *Engine) enrich(ctx context.Context, name, anime string) (*source.CharacterRecord, *source.SeriesRecord) {
	records, err := engine.enricher.SearchCharacters(ctx, name)
	if err != nil || len(records) == 0 {
		if err != nil {
			engine.log.Warn("fighter_enrichment_failed", slog.String("name", name), slog.Any("error", err))
		}
		return nil, nil
	}

	best := bestRecordMatch(records, name, anime)
	if best.MalID != 0 || best.AniListID != 0 {
		detailed, err := engine.enricher.GetCharacterDetails(ctx, best)
		if err == nil {
			best = detailed
		}
	}

	var series *source.SeriesRecord
	if anime != "" {
		seriesRecords, err := engine.enricher.SearchSeries(ctx, anime)
		if err != nil {
			engine.log.Warn("series_enrichment_failed", slog.String("anime", anime), slog.Any("error", err))
		} else if len(seriesRecords) > 0 {
			match := bestSeriesMatch(seriesRecords, anime)
			series = &match
		}
	}

	return &best, series
}

// bestRecordMatch prefers an exact name+series match over the top search
// result.
func bestRecordMatch(records []source.CharacterRecord, name, anime string) source.CharacterRecord {
	for _, record := range records {
		if strings.EqualFold(record.Name, name) && strings.EqualFold(record.SeriesName(), anime) {
			return record
		}
	}
	return records[0]
}

func bestSeriesMatch(records []source.SeriesRecord, anime string) source.SeriesRecord {
	for _, record := range records {
		if strings.EqualFold(record.Name, anime) {
			return record
		}
	}
	return records[0]
}

// # Scoring

// scoreFighters computes every fighter's composite score against the
// selected environment and the rest of the roster.
func (engine *Engine) scoreFighters(fighters []*Fighter, environment Environment) {
	for _, fighter := range fighters {
		basePower := float64(fighter.PowerLevel) * 0.6

		environmentBonus := 0.0
		for _, attribute := range environment.Favors {
			if value := fighter.Attributes[attribute]; value > 80 {
				environmentBonus += float64(value-80) * 0.5
			}
		}

		techniqueBonus := float64(ultimateOf(fighter.Techniques).Power) * 0.1

		minAttribute, maxAttribute := attributeExtremes(fighter.Attributes)
		balanceBonus := float64(100-(maxAttribute-minAttribute)) * 0.1

		matchupBonus := matchupScore(fighter, fighters)

		fighter.Breakdown = Breakdown{
			BasePower:        basePower,
			EnvironmentBonus: environmentBonus,
			TechniqueBonus:   techniqueBonus,
			BalanceBonus:     balanceBonus,
			MatchupBonus:     matchupBonus,
		}
		fighter.Score = basePower + environmentBonus + techniqueBonus + balanceBonus + matchupBonus
	}
}

// matchupScore rewards a fighter whose strengths line up against the
// opposition's weaknesses, capped at 10.
func matchupScore(fighter *Fighter, fighters []*Fighter) float64 {
	score := 0.0

	for _, opponent := range fighters {
		if opponent == fighter {
			continue
		}

		myBest := sortedByValue(fighter.Attributes, true)[:3]
		theirWorst := sortedByValue(opponent.Attributes, false)[:3]

		for _, mine := range myBest {
			for _, theirs := range theirWorst {
				if mine == counterTable[theirs] {
					score += float64(fighter.Attributes[mine]-opponent.Attributes[theirs]) / 10
				}
			}
		}

		for _, attribute := range attributeOrder {
			if fighter.Attributes[attribute] > opponent.Attributes[attribute]+15 {
				score++
			}
		}
	}

	return min(10, score)
}

func attributeExtremes(attributes map[Attribute]int) (lowest, highest int) {
	for i, attribute := range attributeOrder {
		value := attributes[attribute]
		if i == 0 || value < lowest {
			lowest = value
		}
		if i == 0 || value > highest {
			highest = value
		}
	}
	return lowest, highest
}
