// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package source defines the normalized record model shared by all upstream
provider adapters, and the rate-limited request queue they route their
traffic through.

Architecture:

  - Records: source-agnostic character/series shapes. Adapters translate
    provider-specific payloads into these; everything downstream (merging,
    scoring) only ever sees this model.
  - Queue: one per provider, serializing outbound calls under that
    provider's rate budget.

Provider identifiers (MAL ID, AniList ID) are carried side by side so the
unification layer can dispatch detail fetches to whichever providers know
the entity.
*/
package source

// DataSource identifies which provider(s) produced a record.
type DataSource string

const (
	// DataSourceAniList marks a record built solely from AniList data.
	DataSourceAniList DataSource = "single-anilist"

	// DataSourceJikan marks a record built solely from Jikan (MyAnimeList) data.
	DataSourceJikan DataSource = "single-jikan"

	// DataSourceUnified marks a record merged from both providers.
	DataSourceUnified DataSource = "unified"
)

// UnknownSeriesName is the documented default when a provider has no series
// information for a character.
const UnknownSeriesName = "Unknown Anime"

// BaseAttributes are the coarse combat stats a provider may supply.
//
// Neither upstream actually publishes combat stats, so these are zero in
// practice and the scoring engine synthesizes its own deterministic values.
// They exist so the merge policy has a defined per-attribute max rule if a
// future provider does supply them.
type BaseAttributes struct {
	Strength     int `json:"strength"`
	Speed        int `json:"speed"`
	Intelligence int `json:"intelligence"`
}

// SeriesRef is the lightweight series identity attached to a character.
type SeriesRef struct {
	MalID     int      `json:"malId,omitempty"`
	AniListID int      `json:"aniListId,omitempty"`
	Name      string   `json:"name"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Genres    []string `json:"genres,omitempty"`
}

// Appearance is one series a character appears in, with their narrative role.
type Appearance struct {
	SeriesMalID     int    `json:"seriesMalId,omitempty"`
	SeriesAniListID int    `json:"seriesAniListId,omitempty"`
	SeriesName      string `json:"seriesName"`
	Role            string `json:"role,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
}

// CharacterRecord is the canonical, source-agnostic character shape.
//
// # Invariants
//
// Name is never empty (adapters drop nameless upstream rows). Popularity is
// non-negative. MalID/AniListID are zero when the corresponding provider
// does not know the entity.
type CharacterRecord struct {
	MalID      int    `json:"malId,omitempty"`
	AniListID  int    `json:"aniListId,omitempty"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`

	// Description is the biography text; the scoring engine mines it for
	// canonical abilities.
	Description string   `json:"description,omitempty"`
	Nicknames   []string `json:"nicknames,omitempty"`

	// Role is the narrative role in the primary series (Main, Supporting, ...).
	// Only populated by detail fetches.
	Role string `json:"role,omitempty"`

	Series      *SeriesRef   `json:"series,omitempty"`
	Appearances []Appearance `json:"appearances,omitempty"`

	// Popularity is the provider's popularity signal (AniList favourites,
	// Jikan favorites). The merge policy takes the max across providers.
	Popularity int `json:"popularity"`

	Base BaseAttributes `json:"baseAttributes"`

	// Detailed reports whether this record came from a detail fetch rather
	// than a search page.
	Detailed bool `json:"detailed,omitempty"`

	Source DataSource `json:"dataSource"`
}

// PrimaryID returns the record's primary identifier: the AniList ID when
// known, else the MAL ID, else zero.
func (record *CharacterRecord) PrimaryID() int {
	if record.AniListID != 0 {
		return record.AniListID
	}
	return record.MalID
}

// SeriesName returns the name of the character's primary series, or the
// documented default when the series is unknown.
func (record *CharacterRecord) SeriesName() string {
	if record.Series == nil || record.Series.Name == "" {
		return UnknownSeriesName
	}
	return record.Series.Name
}

// SeriesRecord is the canonical, source-agnostic series (anime) shape.
type SeriesRecord struct {
	MalID      int    `json:"malId,omitempty"`
	AniListID  int    `json:"aniListId,omitempty"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`

	// Popularity is provider-specific: AniList's raw popularity counter, or
	// Jikan's score scaled to a comparable range.
	Popularity int `json:"popularity"`

	// Score is the community rating on a 0-100 scale.
	Score int `json:"score,omitempty"`

	Year     int      `json:"year,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Format   string   `json:"format,omitempty"`
	Episodes int      `json:"episodes,omitempty"`

	Description string `json:"description,omitempty"`

	Source DataSource `json:"dataSource"`
}

// Detection is the outcome of resolving a bare character name to a series.
type Detection struct {
	Character *CharacterRecord `json:"character"`
	Series    *SeriesRef       `json:"series,omitempty"`

	// Confidence is the name-similarity score in (0, 1] that produced this
	// detection.
	Confidence float64 `json:"confidence"`

	// Provider names the adapter that produced the detection.
	Provider string `json:"provider"`
}
