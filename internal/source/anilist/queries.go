// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anilist

// GraphQL documents sent to the AniList API. Variables are always passed
// separately; no string interpolation happens here.

// queryCharacterSearch finds characters by name, one fixed-size page, each
// with their most popular media node for series attribution.
const queryCharacterSearch = `
query ($search: String, $perPage: Int) {
    Page(page: 1, perPage: $perPage) {
        characters(search: $search) {
            id
            name {
                full
                native
            }
            image {
                large
                medium
            }
            description
            favourites
            media(sort: POPULARITY_DESC, perPage: 1) {
                nodes {
                    id
                    title {
                        romaji
                        english
                        native
                    }
                    type
                    format
                    genres
                    coverImage {
                        large
                        medium
                    }
                }
            }
        }
    }
}`

// querySeriesSearch finds anime by name, one fixed-size page.
const querySeriesSearch = `
query ($search: String, $perPage: Int) {
    Page(page: 1, perPage: $perPage) {
        media(search: $search, type: ANIME) {
            id
            title {
                romaji
                english
                native
            }
            coverImage {
                large
                medium
            }
            format
            genres
            averageScore
            popularity
            seasonYear
            description
        }
    }
}`

// queryCharacterByID fetches one character in full, including every media
// appearance with the character's role in it.
const queryCharacterByID = `
query ($id: Int) {
    Character(id: $id) {
        id
        name {
            full
            native
        }
        image {
            large
        }
        description
        favourites
        media(sort: POPULARITY_DESC) {
            edges {
                node {
                    id
                    title {
                        romaji
                        english
                    }
                    coverImage {
                        large
                    }
                    type
                    format
                    genres
                }
                role
            }
        }
    }
}`

// queryMediaByID fetches one anime in full.
const queryMediaByID = `
query ($id: Int) {
    Media(id: $id, type: ANIME) {
        id
        title {
            romaji
            english
            native
        }
        coverImage {
            large
        }
        format
        episodes
        status
        genres
        averageScore
        popularity
        seasonYear
        description
    }
}`
