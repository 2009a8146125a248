// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anilist

import (
	"github.com/taibuivan/kessen/internal/source"
	"github.com/taibuivan/kessen/pkg/slice"
)

// mapSearchCharacter converts one search-page character into the normalized
// model, attributing it to its most popular media node when present.
func mapSearchCharacter(wire wireCharacter) source.CharacterRecord {
	record := source.CharacterRecord{
		AniListID:   wire.ID,
		Name:        wire.Name.Full,
		NativeName:  wire.Name.Native,
		ImageURL:    wire.Image.best(),
		Description: wire.Description,
		Popularity:  wire.Favourites,
		Source:      source.DataSourceAniList,
	}

	if len(wire.Media.Nodes) > 0 {
		record.Series = mapSeriesRef(wire.Media.Nodes[0])
	}

	return record
}

// mapDetailedCharacter converts a full character payload, including every
// media appearance with the character's role.
func mapDetailedCharacter(wire wireCharacter) source.CharacterRecord {
	record := source.CharacterRecord{
		AniListID:   wire.ID,
		Name:        wire.Name.Full,
		NativeName:  wire.Name.Native,
		ImageURL:    wire.Image.best(),
		Description: wire.Description,
		Popularity:  wire.Favourites,
		Detailed:    true,
		Source:      source.DataSourceAniList,
	}

	if len(wire.Media.Edges) > 0 {
		primary := wire.Media.Edges[0]
		record.Series = mapSeriesRef(primary.Node)
		record.Role = primary.Role

		record.Appearances = slice.Map(wire.Media.Edges, func(edge wireMediaEdge) source.Appearance {
			return source.Appearance{
				SeriesAniListID: edge.Node.ID,
				SeriesName:      seriesNameOrDefault(edge.Node),
				Role:            edge.Role,
				ImageURL:        edge.Node.CoverImage.best(),
			}
		})
	}

	return record
}

// mapSeries converts a media payload into a normalized series record.
func mapSeries(wire wireMedia) source.SeriesRecord {
	return source.SeriesRecord{
		AniListID:   wire.ID,
		Name:        seriesNameOrDefault(wire),
		NativeName:  wire.Title.Native,
		ImageURL:    wire.CoverImage.best(),
		Popularity:  wire.Popularity,
		Score:       wire.AverageScore,
		Year:        wire.SeasonYear,
		Genres:      wire.Genres,
		Format:      wire.Format,
		Episodes:    wire.Episodes,
		Description: wire.Description,
		Source:      source.DataSourceAniList,
	}
}

func mapSeriesRef(wire wireMedia) *source.SeriesRef {
	return &source.SeriesRef{
		AniListID: wire.ID,
		Name:      seriesNameOrDefault(wire),
		ImageURL:  wire.CoverImage.best(),
		Genres:    wire.Genres,
	}
}

func seriesNameOrDefault(wire wireMedia) string {
	if name := wire.Title.preferred(); name != "" {
		return name
	}
	return source.UnknownSeriesName
}
