// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anilist

// Wire shapes mirroring the AniList GraphQL response structure. They exist
// only for decoding; mapping to the normalized record model happens in
// mapper.go.

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type wireTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

// preferred returns the English title when present, else the romaji one.
func (title wireTitle) preferred() string {
	if title.English != "" {
		return title.English
	}
	return title.Romaji
}

type wireImage struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
}

// best returns the highest-quality image URL available.
func (image wireImage) best() string {
	if image.Large != "" {
		return image.Large
	}
	return image.Medium
}

type wireMedia struct {
	ID           int       `json:"id"`
	Title        wireTitle `json:"title"`
	Type         string    `json:"type"`
	Format       string    `json:"format"`
	Genres       []string  `json:"genres"`
	CoverImage   wireImage `json:"coverImage"`
	AverageScore int       `json:"averageScore"`
	Popularity   int       `json:"popularity"`
	SeasonYear   int       `json:"seasonYear"`
	Episodes     int       `json:"episodes"`
	Description  string    `json:"description"`
}

type wireName struct {
	Full   string `json:"full"`
	Native string `json:"native"`
}

type wireMediaEdge struct {
	Node wireMedia `json:"node"`
	Role string    `json:"role"`
}

type wireCharacter struct {
	ID          int       `json:"id"`
	Name        wireName  `json:"name"`
	Image       wireImage `json:"image"`
	Description string    `json:"description"`
	Favourites  int       `json:"favourites"`
	Media       struct {
		Nodes []wireMedia     `json:"nodes"`
		Edges []wireMediaEdge `json:"edges"`
	} `json:"media"`
}

// pageEnvelope is the envelope for paged search responses.
type pageEnvelope struct {
	Data struct {
		Page struct {
			Characters []wireCharacter `json:"characters"`
			Media      []wireMedia     `json:"media"`
		} `json:"Page"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// characterEnvelope is the envelope for single-character responses.
type characterEnvelope struct {
	Data struct {
		Character *wireCharacter `json:"Character"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// mediaEnvelope is the envelope for single-media responses.
type mediaEnvelope struct {
	Data struct {
		Media *wireMedia `json:"Media"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
