// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSeries(name, seriesName string) CharacterRecord {
	return CharacterRecord{
		Name:   name,
		Series: &SeriesRef{MalID: 21, Name: seriesName},
	}
}

func TestBestDetection_PicksClosestNameMatch(t *testing.T) {
	candidates := []CharacterRecord{
		withSeries("Monkey D. Garp", "One Piece"),
		withSeries("Monkey D. Luffy", "One Piece"),
	}

	detection := BestDetection("monkey d. luffy", candidates, "Jikan")

	require.NotNil(t, detection)
	assert.Equal(t, "Monkey D. Luffy", detection.Character.Name)
	assert.Equal(t, "One Piece", detection.Series.Name)
	assert.Equal(t, "Jikan", detection.Provider)
	assert.Equal(t, 1.0, detection.Confidence)
}

func TestBestDetection_CaseInsensitive(t *testing.T) {
	detection := BestDetection("LUFFY", []CharacterRecord{withSeries("luffy", "One Piece")}, "AniList")

	require.NotNil(t, detection)
	assert.Equal(t, 1.0, detection.Confidence)
}

func TestBestDetection_SkipsWildLengthGaps(t *testing.T) {
	// Nothing within the length bound carries a series, so the far-off
	// candidate must not be considered at all.
	candidates := []CharacterRecord{
		withSeries("Monkey D. Luffy, King of the Pirates and Future Pirate King", "One Piece"),
	}

	assert.Nil(t, BestDetection("Luffy", candidates, "Jikan"))
}

func TestBestDetection_WinnerWithoutSeriesIsDiscarded(t *testing.T) {
	candidates := []CharacterRecord{
		{Name: "Luffy"},
		withSeries("Luffyko", "One Piece"),
	}

	// The exact match wins the scan but has no series to report.
	assert.Nil(t, BestDetection("Luffy", candidates, "Jikan"))
}

func TestBestDetection_NoCandidates(t *testing.T) {
	assert.Nil(t, BestDetection("Luffy", nil, "Jikan"))
}
