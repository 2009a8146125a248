// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unified

import (
	"github.com/taibuivan/kessen/internal/source"
	"github.com/taibuivan/kessen/pkg/slice"
)

// # Merge Policy
//
// Record A is the preferred source for presentation fields (name, image);
// numeric signals take the max across both. Merging a record with itself
// yields an equivalent record, and swapping A and B only ever changes which
// of two equally long descriptions wins.

// mergeCharacters combines two provider views of the same character.
func mergeCharacters(a, b source.CharacterRecord) source.CharacterRecord {
	merged := source.CharacterRecord{
		MalID:      firstNonZero(a.MalID, b.MalID),
		AniListID:  firstNonZero(a.AniListID, b.AniListID),
		Name:       firstNonEmpty(a.Name, b.Name),
		NativeName: firstNonEmpty(a.NativeName, b.NativeName),
		ImageURL:   firstNonEmpty(a.ImageURL, b.ImageURL),
		Role:       firstNonEmpty(a.Role, b.Role),
		Popularity: max(a.Popularity, b.Popularity),
		Detailed:   a.Detailed || b.Detailed,
		Source:     source.DataSourceUnified,
	}

	// Longer biography wins; A on ties.
	merged.Description = a.Description
	if len(b.Description) > len(a.Description) {
		merged.Description = b.Description
	}

	merged.Nicknames = slice.Union(a.Nicknames, b.Nicknames)
	merged.Series = mergeSeriesRefs(a.Series, b.Series)

	merged.Appearances = a.Appearances
	if len(merged.Appearances) == 0 {
		merged.Appearances = b.Appearances
	}

	merged.Base = source.BaseAttributes{
		Strength:     max(a.Base.Strength, b.Base.Strength),
		Speed:        max(a.Base.Speed, b.Base.Speed),
		Intelligence: max(a.Base.Intelligence, b.Base.Intelligence),
	}

	return merged
}

// mergeSeriesRefs combines the lightweight series identities; A's identity
// leads, genres are unioned. Either side may be nil.
func mergeSeriesRefs(a, b *source.SeriesRef) *source.SeriesRef {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		ref := *b
		return &ref
	case b == nil:
		ref := *a
		return &ref
	}

	return &source.SeriesRef{
		MalID:     firstNonZero(a.MalID, b.MalID),
		AniListID: firstNonZero(a.AniListID, b.AniListID),
		Name:      firstNonEmpty(a.Name, b.Name),
		ImageURL:  firstNonEmpty(a.ImageURL, b.ImageURL),
		Genres:    slice.Union(a.Genres, b.Genres),
	}
}

// mergeSeries combines two provider views of the same series.
func mergeSeries(a, b source.SeriesRecord) source.SeriesRecord {
	merged := source.SeriesRecord{
		MalID:      firstNonZero(a.MalID, b.MalID),
		AniListID:  firstNonZero(a.AniListID, b.AniListID),
		Name:       firstNonEmpty(a.Name, b.Name),
		NativeName: firstNonEmpty(a.NativeName, b.NativeName),
		ImageURL:   firstNonEmpty(a.ImageURL, b.ImageURL),
		Popularity: max(a.Popularity, b.Popularity),
		Score:      firstNonZero(a.Score, b.Score),
		Year:       firstNonZero(a.Year, b.Year),
		Genres:     slice.Union(a.Genres, b.Genres),
		Format:     firstNonEmpty(a.Format, b.Format),
		Episodes:   firstNonZero(a.Episodes, b.Episodes),
		Source:     source.DataSourceUnified,
	}

	merged.Description = a.Description
	if len(b.Description) > len(a.Description) {
		merged.Description = b.Description
	}

	return merged
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
