// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package jikan adapts the Jikan REST API (the unofficial MyAnimeList API) to
the normalized record model.

All traffic is routed through the provider's rate-limited [source.Queue]
(Jikan allows roughly three requests per second; a 429 pauses the queue for
one second). Search methods degrade to empty results on malformed payloads;
detail fetches propagate failure.
*/
package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/kessen/internal/platform/apperr"
	"github.com/taibuivan/kessen/internal/platform/constants"
	"github.com/taibuivan/kessen/internal/source"
)

// Provider is the human-readable name used in errors and logs.
const Provider = "Jikan"

// Client is the Jikan source adapter.
type Client struct {
	baseURL    string
	queue      *source.Queue
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient constructs a Jikan adapter routing through the given queue.
func NewClient(baseURL string, queue *source.Queue, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		queue:      queue,
		httpClient: &http.Client{},
		log:        log.With(slog.String("adapter", "jikan")),
	}
}

// get enqueues one GET exchange and returns the raw response body.
func (client *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	return client.queue.Enqueue(ctx, func(ctx context.Context) (*http.Response, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+endpoint, nil)
		if err != nil {
			return nil, err
		}
		request.Header.Set("Accept", "application/json")

		return client.httpClient.Do(request)
	})
}

// # Search Operations

/*
SearchCharacters finds characters by name via GET /characters.

Parameters:
  - ctx: context.Context
  - query: string (Character name)

Returns:
  - []source.CharacterRecord: Normalized records, possibly empty
  - error: Transport or upstream-status failures from the queue
*/
func (client *Client) SearchCharacters(ctx context.Context, query string) ([]source.CharacterRecord, error) {
	if strings.TrimSpace(query) == "" {
		return []source.CharacterRecord{}, nil
	}

	endpoint := fmt.Sprintf("/characters?q=%s&limit=%d", url.QueryEscape(query), constants.SearchPageSize)
	body, err := client.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope characterListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		client.log.Warn("malformed_search_payload", slog.Any("error", err))
		return []source.CharacterRecord{}, nil
	}

	records := make([]source.CharacterRecord, 0, len(envelope.Data))
	for _, wire := range envelope.Data {
		if wire.Name == "" {
			continue
		}
		records = append(records, mapSearchCharacter(wire))
	}

	return records, nil
}

/*
SearchSeries finds anime series by name via GET /anime.

Parameters:
  - ctx: context.Context
  - query: string (Series name)

Returns:
  - []source.SeriesRecord: Normalized records, possibly empty
  - error: Transport or upstream-status failures from the queue
*/
func (client *Client) SearchSeries(ctx context.Context, query string) ([]source.SeriesRecord, error) {
	if strings.TrimSpace(query) == "" {
		return []source.SeriesRecord{}, nil
	}

	endpoint := fmt.Sprintf("/anime?q=%s&limit=%d", url.QueryEscape(query), constants.SearchPageSize)
	body, err := client.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope animeListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		client.log.Warn("malformed_search_payload", slog.Any("error", err))
		return []source.SeriesRecord{}, nil
	}

	records := make([]source.SeriesRecord, 0, len(envelope.Data))
	for _, wire := range envelope.Data {
		if wire.Title == "" {
			continue
		}
		records = append(records, mapSeries(wire))
	}

	return records, nil
}

// # Detail Operations

/*
CharacterDetails fetches one character in full by MAL ID via
GET /characters/{id}/full.

Parameters:
  - ctx: context.Context
  - id: int (MyAnimeList character ID)

Returns:
  - *source.CharacterRecord: The detailed record (biography, nicknames, role)
  - error: apperr.NotFound when MAL has no such character, or queue failures
*/
func (client *Client) CharacterDetails(ctx context.Context, id int) (*source.CharacterRecord, error) {
	body, err := client.get(ctx, fmt.Sprintf("/characters/%d/full", id))
	if err != nil {
		return nil, err
	}

	var envelope characterFullEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperr.UpstreamUnavailable(Provider, err)
	}
	if envelope.Data == nil || envelope.Data.Name == "" {
		return nil, apperr.NotFound("Character")
	}

	record := mapDetailedCharacter(*envelope.Data)
	return &record, nil
}

// # Detection

/*
DetectAnime resolves a bare character name to its series by scanning this
provider's own search results for the closest name match.

Parameters:
  - ctx: context.Context
  - name: string (Character name as typed by the user)

Returns:
  - *source.Detection: Best series-carrying match, or nil when none exists
  - error: Queue failures from the underlying search
*/
func (client *Client) DetectAnime(ctx context.Context, name string) (*source.Detection, error) {
	records, err := client.SearchCharacters(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	return source.BestDetection(name, records, Provider), nil
}
