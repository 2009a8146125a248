// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jikan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kessen/internal/source"
)

func animeRef(role string, malID int, title string) wireAnimeRef {
	ref := wireAnimeRef{Role: role}
	ref.Anime.MalID = malID
	ref.Anime.Title = title
	return ref
}

func TestMapSearchCharacter_Defaults(t *testing.T) {
	record := mapSearchCharacter(wireCharacter{MalID: 40, Name: "Monkey D. Luffy"})

	assert.Equal(t, 40, record.MalID)
	assert.Zero(t, record.AniListID)
	assert.Equal(t, defaultPopularity, record.Popularity)
	assert.Nil(t, record.Series)
	assert.False(t, record.Detailed)
	assert.Equal(t, source.DataSourceJikan, record.Source)
}

func TestMapSearchCharacter_FirstAppearanceBecomesSeries(t *testing.T) {
	wire := wireCharacter{MalID: 40, Name: "Monkey D. Luffy", Favorites: 48000}
	wire.Anime = []wireAnimeRef{animeRef("Main", 21, "One Piece")}

	record := mapSearchCharacter(wire)

	require.NotNil(t, record.Series)
	assert.Equal(t, 21, record.Series.MalID)
	assert.Equal(t, "One Piece", record.Series.Name)
	assert.Equal(t, 48000, record.Popularity)
}

func TestMapDetailedCharacter_CarriesBiographyAndRole(t *testing.T) {
	wire := wireCharacter{
		MalID:     40,
		Name:      "Monkey D. Luffy",
		About:     "His devil fruit ability turns his body to rubber.",
		Nicknames: []string{"Straw Hat"},
		Favorites: 48000,
	}
	wire.Anime = []wireAnimeRef{
		animeRef("Main", 21, "One Piece"),
		animeRef("Main", 44, "One Piece Film: Red"),
	}

	record := mapDetailedCharacter(wire)

	assert.True(t, record.Detailed)
	assert.Equal(t, "Main", record.Role)
	assert.Equal(t, wire.About, record.Description)
	assert.Equal(t, []string{"Straw Hat"}, record.Nicknames)
	require.Len(t, record.Appearances, 2)
	assert.Equal(t, 44, record.Appearances[1].SeriesMalID)
	assert.Equal(t, "One Piece Film: Red", record.Appearances[1].SeriesName)
}

func TestMapSeries_ScoreScaling(t *testing.T) {
	scored := mapSeries(wireAnime{MalID: 21, Title: "One Piece", Score: 8.7, Year: 1999})
	assert.Equal(t, 87, scored.Popularity)
	assert.Equal(t, 87, scored.Score)
	assert.Equal(t, 1999, scored.Year)

	unscored := mapSeries(wireAnime{MalID: 21, Title: "One Piece"})
	assert.Equal(t, defaultSeriesPopularity, unscored.Popularity)
}
