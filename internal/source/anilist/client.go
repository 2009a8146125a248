// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package anilist adapts the AniList GraphQL API to the normalized record model.

All traffic is routed through the provider's rate-limited [source.Queue]
(AniList budgets 90 requests per minute; a 429 pauses the queue for a full
minute). Search methods degrade to empty results on malformed payloads;
detail fetches propagate failure so callers can distinguish "not found"
from "nothing matched".
*/
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/kessen/internal/platform/apperr"
	"github.com/taibuivan/kessen/internal/platform/constants"
	"github.com/taibuivan/kessen/internal/source"
)

// Provider is the human-readable name used in errors and logs.
const Provider = "AniList"

// Client is the AniList source adapter.
type Client struct {
	baseURL    string
	queue      *source.Queue
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient constructs an AniList adapter routing through the given queue.
//
// The HTTP client carries no per-request timeout of its own: deadlines come
// from the caller's context, and 429 stalls are bounded by the queue's
// cooldown logic instead.
func NewClient(baseURL string, queue *source.Queue, log *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		queue:      queue,
		httpClient: &http.Client{},
		log:        log.With(slog.String("adapter", "anilist")),
	}
}

// graphQLFailure folds a GraphQL error list into one upstream error.
// AniList reports these alongside HTTP 200, so the queue's status check
// never sees them.
func graphQLFailure(errs []graphQLError) error {
	if len(errs) == 0 {
		return nil
	}

	messages := make([]string, 0, len(errs))
	for _, gqlErr := range errs {
		messages = append(messages, gqlErr.Message)
	}
	return apperr.UpstreamUnavailable(Provider, errors.New(strings.Join(messages, "; ")))
}

// post enqueues one GraphQL exchange and returns the raw response body.
func (client *Client) post(ctx context.Context, query string, variables map[string]interface{}) ([]byte, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return client.queue.Enqueue(ctx, func(ctx context.Context) (*http.Response, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Accept", "application/json")

		return client.httpClient.Do(request)
	})
}

// # Search Operations

/*
SearchCharacters finds characters by name.

Description: issues one fixed-size page (10 results), attributing each
character to its most popular media node. A payload with no characters is a
normal empty result, not an error.

Parameters:
  - ctx: context.Context
  - query: string (Character name, already trimmed by the caller)

Returns:
  - []source.CharacterRecord: Normalized records, possibly empty
  - error: Transport or upstream-status failures from the queue
*/
func (client *Client) SearchCharacters(ctx context.Context, query string) ([]source.CharacterRecord, error) {
	if strings.TrimSpace(query) == "" {
		return []source.CharacterRecord{}, nil
	}

	body, err := client.post(ctx, queryCharacterSearch, map[string]interface{}{
		"search":  query,
		"perPage": constants.SearchPageSize,
	})
	if err != nil {
		return nil, err
	}

	var envelope pageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		client.log.Warn("malformed_search_payload", slog.Any("error", err))
		return []source.CharacterRecord{}, nil
	}
	if err := graphQLFailure(envelope.Errors); err != nil {
		client.log.Warn("graphql_errors", slog.Any("error", err))
		return []source.CharacterRecord{}, nil
	}

	records := make([]source.CharacterRecord, 0, len(envelope.Data.Page.Characters))
	for _, wire := range envelope.Data.Page.Characters {
		if wire.Name.Full == "" {
			continue
		}
		records = append(records, mapSearchCharacter(wire))
	}

	return records, nil
}

/*
SearchSeries finds anime series by name.

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

	body, err := client.post(ctx, querySeriesSearch, map[string]interface{}{
		"search":  query,
		"perPage": constants.SearchPageSize,
	})
	if err != nil {
		return nil, err
	}

	var envelope pageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		client.log.Warn("malformed_search_payload", slog.Any("error", err))
		return []source.SeriesRecord{}, nil
	}
	if err := graphQLFailure(envelope.Errors); err != nil {
		client.log.Warn("graphql_errors", slog.Any("error", err))
		return []source.SeriesRecord{}, nil
	}

	records := make([]source.SeriesRecord, 0, len(envelope.Data.Page.Media))
	for _, wire := range envelope.Data.Page.Media {
		if wire.Title.preferred() == "" {
			continue
		}
		records = append(records, mapSeries(wire))
	}

	return records, nil
}

// # Detail Operations

/*
CharacterDetails fetches one character in full by AniList ID.

Description: unlike search, detail fetches propagate every failure — the
caller needs to distinguish an unreachable upstream from an entity that
does not exist.

Parameters:
  - ctx: context.Context
  - id: int (AniList character ID)

Returns:
  - *source.CharacterRecord: The detailed record
  - error: apperr.NotFound when AniList has no such character, or queue failures
*/
func (client *Client) CharacterDetails(ctx context.Context, id int) (*source.CharacterRecord, error) {
	body, err := client.post(ctx, queryCharacterByID, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}

	var envelope characterEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperr.UpstreamUnavailable(Provider, err)
	}
	if err := graphQLFailure(envelope.Errors); err != nil {
		return nil, err
	}
	if envelope.Data.Character == nil || envelope.Data.Character.Name.Full == "" {
		return nil, apperr.NotFound("Character")
	}

	record := mapDetailedCharacter(*envelope.Data.Character)
	return &record, nil
}

/*
SeriesDetails fetches one anime in full by AniList ID.

Parameters:
  - ctx: context.Context
  - id: int (AniList media ID)

Returns:
  - *source.SeriesRecord: The detailed record
  - error: apperr.NotFound when AniList has no such anime, or queue failures
*/
func (client *Client) SeriesDetails(ctx context.Context, id int) (*source.SeriesRecord, error) {
	body, err := client.post(ctx, queryMediaByID, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}

	var envelope mediaEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperr.UpstreamUnavailable(Provider, err)
	}
	if err := graphQLFailure(envelope.Errors); err != nil {
		return nil, err
	}
	if envelope.Data.Media == nil {
		return nil, apperr.NotFound("Series")
	}

	record := mapSeries(*envelope.Data.Media)
	return &record, nil
}

// # Detection

/*
DetectAnime resolves a bare character name to its series by scanning this
provider's own search results for the closest name match.

Description: candidates whose length differs from the query by more than a
small bound are skipped before the edit-distance scan. The best match that
carries an identified series is returned with its confidence; applying a
confidence threshold is left to the caller.

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
