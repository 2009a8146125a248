// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jikan

import (
	"math"

	"github.com/taibuivan/kessen/internal/source"
	"github.com/taibuivan/kessen/pkg/slice"
)

// # Mapping

// defaultPopularity stands in when MAL reports no favorites count.
const defaultPopularity = 50

// defaultSeriesPopularity stands in when MAL reports no community score.
const defaultSeriesPopularity = 80

// mapSearchCharacter converts one search-page row.
func mapSearchCharacter(wire wireCharacter) source.CharacterRecord {
	record := source.CharacterRecord{
		MalID:      wire.MalID,
		Name:       wire.Name,
		NativeName: wire.NameKanji,
		ImageURL:   wire.Images.JPG.ImageURL,
		Popularity: popularityOrDefault(wire.Favorites),
		Source:     source.DataSourceJikan,
	}

	if len(wire.Anime) > 0 {
		ref := mapSeriesRef(wire.Anime[0])
		record.Series = &ref
	}

	return record
}

// mapDetailedCharacter converts a full character payload, carrying the
// biography, nicknames, and narrative role the search page omits.
func mapDetailedCharacter(wire wireCharacter) source.CharacterRecord {
	record := mapSearchCharacter(wire)
	record.Description = wire.About
	record.Nicknames = wire.Nicknames
	record.Detailed = true

	if len(wire.Anime) > 0 {
		record.Role = wire.Anime[0].Role
		record.Appearances = slice.Map(wire.Anime, func(ref wireAnimeRef) source.Appearance {
			return source.Appearance{
				SeriesMalID: ref.Anime.MalID,
				SeriesName:  ref.Anime.Title,
				Role:        ref.Role,
				ImageURL:    ref.Anime.Images.JPG.ImageURL,
			}
		})
	}

	return record
}

// mapSeries converts one anime search row. MAL scores run 0-10, so the
// 0-100 popularity signal is the score times ten.
func mapSeries(wire wireAnime) source.SeriesRecord {
	popularity := defaultSeriesPopularity
	if wire.Score > 0 {
		popularity = int(math.Round(wire.Score * 10))
	}

	return source.SeriesRecord{
		MalID:       wire.MalID,
		Name:        wire.Title,
		ImageURL:    wire.Images.JPG.ImageURL,
		Popularity:  popularity,
		Score:       popularity,
		Year:        wire.Year,
		Genres:      slice.Map(wire.Genres, func(genre wireGenre) string { return genre.Name }),
		Description: wire.Synopsis,
		Source:      source.DataSourceJikan,
	}
}

// mapSeriesRef converts the first anime appearance into the lightweight
// series identity carried on a character.
func mapSeriesRef(ref wireAnimeRef) source.SeriesRef {
	return source.SeriesRef{
		MalID:    ref.Anime.MalID,
		Name:     ref.Anime.Title,
		ImageURL: ref.Anime.Images.JPG.ImageURL,
	}
}

func popularityOrDefault(favorites int) int {
	if favorites > 0 {
		return favorites
	}
	return defaultPopularity
}
