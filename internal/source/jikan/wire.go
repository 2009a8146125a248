// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jikan

// # Wire Types
//
// On-the-wire shapes for the Jikan v4 REST payloads. Only the fields the
// adapter reads are declared.

type wireImages struct {
	JPG struct {
		ImageURL string `json:"image_url"`
	} `json:"jpg"`
}

type wireAnimeRef struct {
	Role  string `json:"role"`
	Anime struct {
		MalID  int        `json:"mal_id"`
		Title  string     `json:"title"`
		Images wireImages `json:"images"`
	} `json:"anime"`
}

type wireCharacter struct {
	MalID     int            `json:"mal_id"`
	Name      string         `json:"name"`
	NameKanji string         `json:"name_kanji"`
	Nicknames []string       `json:"nicknames"`
	About     string         `json:"about"`
	Favorites int            `json:"favorites"`
	Images    wireImages     `json:"images"`
	Anime     []wireAnimeRef `json:"anime"`
}

type wireGenre struct {
	Name string `json:"name"`
}

type wireAnime struct {
	MalID    int         `json:"mal_id"`
	Title    string      `json:"title"`
	Synopsis string      `json:"synopsis"`
	Score    float64     `json:"score"`
	Year     int         `json:"year"`
	Images   wireImages  `json:"images"`
	Genres   []wireGenre `json:"genres"`
}

// characterListEnvelope wraps GET /characters responses.
type characterListEnvelope struct {
	Data []wireCharacter `json:"data"`
}

// characterFullEnvelope wraps GET /characters/{id}/full responses. A pointer
// distinguishes "no data key" from an empty object.
type characterFullEnvelope struct {
	Data *wireCharacter `json:"data"`
}

// animeListEnvelope wraps GET /anime responses.
type animeListEnvelope struct {
	Data []wireAnime `json:"data"`
}
