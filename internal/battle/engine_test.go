// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kessen/internal/source"
)

// fakeEnricher is a scripted unification layer.
type fakeEnricher struct {
	characters map[string][]source.CharacterRecord
	series     map[string][]source.SeriesRecord
	failAll    bool
}

func (fake *fakeEnricher) SearchCharacters(_ context.Context, query string) ([]source.CharacterRecord, error) {
	if fake.failAll {
		return nil, errors.New("upstream down")
	}
	return fake.characters[query], nil
}

func (fake *fakeEnricher) SearchSeries(_ context.Context, query string) ([]source.SeriesRecord, error) {
	if fake.failAll {
		return nil, errors.New("upstream down")
	}
	return fake.series[query], nil
}

func (fake *fakeEnricher) GetCharacterDetails(_ context.Context, record source.CharacterRecord) (source.CharacterRecord, error) {
	return record, nil
}

func newTestEngine(enricher Enricher) *Engine {
	return NewEngine(enricher, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSimulate_RejectsBadRosters(t *testing.T) {
	engine := newTestEngine(&fakeEnricher{})

	_, err := engine.Simulate(context.Background(), nil)
	assert.Error(t, err)

	_, err = engine.Simulate(context.Background(), make([]Combatant, 5))
	assert.Error(t, err)

	_, err = engine.Simulate(context.Background(), []Combatant{{Name: "  ", Anime: "One Piece"}})
	assert.Error(t, err)
}

func TestSimulate_CompletesWithoutUpstreamData(t *testing.T) {
	engine := newTestEngine(&fakeEnricher{failAll: true})

	result, err := engine.Simulate(context.Background(), []Combatant{
		{Name: "Monkey D. Luffy", Anime: "One Piece"},
		{Name: "Saitama", Anime: "One Punch Man"},
	})

	require.NoError(t, err)
	require.Len(t, result.Combatants, 2)
	assert.NotEmpty(t, result.Winner)
	assert.NotEmpty(t, result.Environment.Name)
	assert.Len(t, result.Phases, 4)
	assert.NotEmpty(t, result.VictoryFactors)

	for _, fighter := range result.Combatants {
		assert.Nil(t, fighter.Record)
		assert.Len(t, fighter.Techniques, 4)
		for _, attribute := range attributeOrder {
			value := fighter.Attributes[attribute]
			assert.GreaterOrEqual(t, value, attributeFloor)
			assert.LessOrEqual(t, value, attributeCeil)
		}
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	combatants := []Combatant{
		{Name: "Monkey D. Luffy", Anime: "One Piece"},
		{Name: "Saitama", Anime: "One Punch Man"},
	}
	engine := newTestEngine(&fakeEnricher{})

	first, err := engine.Simulate(context.Background(), combatants)
	require.NoError(t, err)
	second, err := engine.Simulate(context.Background(), combatants)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulate_SelfFightBreaksTieByRosterOrder(t *testing.T) {
	combatants := []Combatant{
		{Name: "Saitama", Anime: "One Punch Man"},
		{Name: "Saitama", Anime: "One Punch Man"},
	}
	engine := newTestEngine(&fakeEnricher{})

	result, err := engine.Simulate(context.Background(), combatants)

	require.NoError(t, err)
	require.Len(t, result.Combatants, 2)
	assert.Equal(t, result.Combatants[0].Score, result.Combatants[1].Score)
	assert.Equal(t, result.Combatants[0].Attributes, result.Combatants[1].Attributes)
	assert.Equal(t, "Saitama", result.Winner)
}

func TestSimulate_EnrichmentFlowsIntoScoring(t *testing.T) {
	enricher := &fakeEnricher{
		characters: map[string][]source.CharacterRecord{
			"Monkey D. Luffy": {{
				MalID:      40,
				AniListID:  40,
				Name:       "Monkey D. Luffy",
				Popularity: 52000,
				Role:       "MAIN",
				Description: "Ability: Gomu Gomu no Mi. His devil fruit power turns " +
					"his body to rubber and fuels his incredible strength.",
				Series: &source.SeriesRef{AniListID: 21, Name: "One Piece"},
				Source: source.DataSourceUnified,
			}},
		},
		series: map[string][]source.SeriesRecord{
			"One Piece": {{AniListID: 21, Name: "One Piece", Popularity: 350000, Score: 88}},
		},
	}
	engine := newTestEngine(enricher)

	result, err := engine.Simulate(context.Background(), []Combatant{
		{Name: "Monkey D. Luffy", Anime: "One Piece"},
	})

	require.NoError(t, err)
	fighter := result.Combatants[0]

	require.NotNil(t, fighter.Record)
	assert.NotEmpty(t, fighter.Abilities)

	// The mined ability names the offensive technique.
	offensive := fighter.Techniques[0]
	assert.True(t, offensive.Canonical)
	assert.Equal(t, "Gomu Gomu no Mi", offensive.Name)
	assert.Contains(t, offensive.Description, "from the series")

	// Breakdown components add up to the score.
	breakdown := fighter.Breakdown
	total := breakdown.BasePower + breakdown.EnvironmentBonus + breakdown.TechniqueBonus +
		breakdown.BalanceBonus + breakdown.MatchupBonus
	assert.InDelta(t, fighter.Score, total, 1e-9)
}

func TestMatchupScore_RewardsCountersAndEdges(t *testing.T) {
	strong := fighterWithAttributes("strong", map[Attribute]int{
		AttrTechnique: 95, AttrWillpower: 92, AttrStrength: 90,
	})
	weak := fighterWithAttributes("weak", map[Attribute]int{
		AttrSpeed: 60, AttrIntelligence: 61, AttrDefense: 62,
	})

	score := matchupScore(strong, []*Fighter{strong, weak})

	// Technique counters the opponent's weak speed ((95-60)/10), willpower
	// counters their weak intelligence ((92-61)/10), and three attributes
	// hold a 15-point direct edge (+1 each).
	assert.InDelta(t, 3.5+3.1+3, score, 1e-9)
}

func TestScoreFighters_EnvironmentBonusOnlyAboveEighty(t *testing.T) {
	engine := newTestEngine(&fakeEnricher{})

	modest := fighterWithAttributes("modest", nil)
	modest.PowerLevel = powerLevel(modest.Attributes)
	modest.Techniques = buildTechniques("modest", "", modest.Attributes, nil)

	engine.scoreFighters([]*Fighter{modest}, environments[0])

	assert.Zero(t, modest.Breakdown.EnvironmentBonus)

	strong := fighterWithAttributes("strong", map[Attribute]int{AttrSpeed: 90, AttrIntelligence: 84})
	strong.PowerLevel = powerLevel(strong.Attributes)
	strong.Techniques = buildTechniques("strong", "", strong.Attributes, nil)

	// Shattered Cityscape favors speed and intelligence.
	engine.scoreFighters([]*Fighter{strong}, environments[0])

	assert.InDelta(t, (90-80)*0.5+(84-80)*0.5, strong.Breakdown.EnvironmentBonus, 1e-9)
}
