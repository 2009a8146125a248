// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package unified merges the provider adapters into one canonical view.

Architecture:

  - Service: fans searches out to both providers concurrently, folds the
    results through the merge policy, and caches the outcome.
  - Store: a time-bounded cache (in-memory by default, Redis when
    configured) keyed per namespace — characters and series never share keys.
  - Merge policy: AniList is source A; presentation fields prefer A, numeric
    signals take the max, text takes the longer side.

Search operations isolate provider failures (a dead upstream degrades the
result set, it does not fail the request). Detail operations are best-effort
per provider and fall back to the caller's record when nothing better is
available.
*/
package unified

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/kessen/internal/platform/constants"
	"github.com/taibuivan/kessen/internal/source"
	"github.com/taibuivan/kessen/pkg/namekey"
)

// Adapter is the provider surface the unification layer consumes. Both
// source adapters satisfy it.
type Adapter interface {
	SearchCharacters(ctx context.Context, query string) ([]source.CharacterRecord, error)
	SearchSeries(ctx context.Context, query string) ([]source.SeriesRecord, error)
	CharacterDetails(ctx context.Context, id int) (*source.CharacterRecord, error)
	DetectAnime(ctx context.Context, name string) (*source.Detection, error)
}

// SeriesDetailer fetches a single series in full. Only AniList exposes a
// usable media-by-id lookup.
type SeriesDetailer interface {
	SeriesDetails(ctx context.Context, id int) (*source.SeriesRecord, error)
}

// Service is the unification layer.
type Service struct {
	aniList Adapter
	jikan   Adapter
	media   SeriesDetailer

	characters Store
	series     Store

	log *slog.Logger
}

// NewService wires the unification layer over the two adapters and their
// caches. media is typically the AniList adapter again.
func NewService(aniList, jikan Adapter, media SeriesDetailer, characters, series Store, log *slog.Logger) *Service {
	return &Service{
		aniList:    aniList,
		jikan:      jikan,
		media:      media,
		characters: characters,
		series:     series,
		log:        log.With(slog.String("component", "unified")),
	}
}

// # Search Operations

/*
SearchCharacters runs a character search across both providers and merges
the results into canonical records.

Description:
 1. A fresh cache entry for the normalized query returns immediately.
 2. Both adapters are queried concurrently; a failed provider contributes
    an empty set rather than failing the search.
 3. Results are folded by normalized name (AniList rows seed the fold, so
    insertion order — and therefore tie order — is stable), sorted by
    popularity descending, and cached.
 4. If BOTH concurrent calls failed, the providers are retried one at a
    time (Jikan first). A search never surfaces provider failures: when
    every path is down the result is simply empty.

Parameters:
  - ctx: context.Context
  - query: string (Raw user query; leading/trailing whitespace ignored)

Returns:
  - []source.CharacterRecord: Merged records, possibly empty
  - error: Reserved; searches degrade to an empty list instead of failing
*/
func (service *Service) SearchCharacters(ctx context.Context, query string) ([]source.CharacterRecord, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []source.CharacterRecord{}, nil
	}

	key := searchKey(trimmed)
	if cached, ok := cacheGet[[]source.CharacterRecord](ctx, service.characters, key, service.log); ok {
		return cached, nil
	}

	var (
		wg             sync.WaitGroup
		aniListRecords []source.CharacterRecord
		jikanRecords   []source.CharacterRecord
		aniListErr     error
		jikanErr       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		aniListRecords, aniListErr = service.aniList.SearchCharacters(ctx, trimmed)
	}()
	go func() {
		defer wg.Done()
		jikanRecords, jikanErr = service.jikan.SearchCharacters(ctx, trimmed)
	}()
	wg.Wait()

	if aniListErr != nil && jikanErr != nil {
		return service.characterSearchFallback(ctx, trimmed, key)
	}
	if aniListErr != nil {
		service.log.Warn("provider_search_failed", slog.String("provider", "anilist"), slog.Any("error", aniListErr))
		aniListRecords = nil
	}
	if jikanErr != nil {
		service.log.Warn("provider_search_failed", slog.String("provider", "jikan"), slog.Any("error", jikanErr))
		jikanRecords = nil
	}

	merged := foldCharacters(aniListRecords, jikanRecords)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Popularity > merged[j].Popularity
	})

	cacheSet(ctx, service.characters, key, merged, service.log)
	return merged, nil
}

// characterSearchFallback retries the providers sequentially after the
// concurrent fan-out lost both of them.
func (service *Service) characterSearchFallback(ctx context.Context, query, key string) ([]source.CharacterRecord, error) {
	service.log.Warn("character_search_degraded", slog.String("query", query))

	records, err := service.jikan.SearchCharacters(ctx, query)
	if err != nil {
		records, err = service.aniList.SearchCharacters(ctx, query)
	}
	if err != nil {
		// Every path is down. The caller gets an empty result, not the
		// provider's problem.
		service.log.Error("character_search_failed", slog.String("query", query), slog.Any("error", err))
		return []source.CharacterRecord{}, nil
	}

	cacheSet(ctx, service.characters, key, records, service.log)
	return records, nil
}

/*
SearchSeries runs a series search across both providers and merges the
results. Same shape as SearchCharacters: cache first, concurrent fan-out
with provider-failure isolation, fold by normalized name, sort by
popularity, cache.

Parameters:
  - ctx: context.Context
  - query: string (Raw user query)

Returns:
  - []source.SeriesRecord: Merged records, possibly empty
  - error: Reserved; searches degrade to an empty list instead of failing
*/
func (service *Service) SearchSeries(ctx context.Context, query string) ([]source.SeriesRecord, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []source.SeriesRecord{}, nil
	}

	key := searchKey(trimmed)
	if cached, ok := cacheGet[[]source.SeriesRecord](ctx, service.series, key, service.log); ok {
		return cached, nil
	}

	var (
		wg             sync.WaitGroup
		aniListRecords []source.SeriesRecord
		jikanRecords   []source.SeriesRecord
		aniListErr     error
		jikanErr       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		aniListRecords, aniListErr = service.aniList.SearchSeries(ctx, trimmed)
	}()
	go func() {
		defer wg.Done()
		jikanRecords, jikanErr = service.jikan.SearchSeries(ctx, trimmed)
	}()
	wg.Wait()

	if aniListErr != nil && jikanErr != nil {
		service.log.Warn("series_search_degraded", slog.String("query", trimmed))

		records, err := service.jikan.SearchSeries(ctx, trimmed)
		if err != nil {
			records, err = service.aniList.SearchSeries(ctx, trimmed)
		}
		if err != nil {
			service.log.Error("series_search_failed", slog.String("query", trimmed), slog.Any("error", err))
			return []source.SeriesRecord{}, nil
		}

		cacheSet(ctx, service.series, key, records, service.log)
		return records, nil
	}
	if aniListErr != nil {
		service.log.Warn("provider_search_failed", slog.String("provider", "anilist"), slog.Any("error", aniListErr))
		aniListRecords = nil
	}
	if jikanErr != nil {
		service.log.Warn("provider_search_failed", slog.String("provider", "jikan"), slog.Any("error", jikanErr))
		jikanRecords = nil
	}

	merged := foldSeries(aniListRecords, jikanRecords)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Popularity > merged[j].Popularity
	})

	cacheSet(ctx, service.series, key, merged, service.log)
	return merged, nil
}

// # Detail Operations

/*
GetCharacterDetails enriches a record with the full biographies both
providers hold for it.

Description: each provider whose ID the record carries is queried in
parallel; a provider failure is logged and treated as "nothing to add".
When neither provider produced anything the input is returned unchanged.
Enriched results are cached under the record's ID pair.

Parameters:
  - ctx: context.Context
  - record: source.CharacterRecord (Must carry at least one provider ID to
    gain anything)

Returns:
  - source.CharacterRecord: The enriched record, or the input unchanged
  - error: Reserved; detail fetches are best-effort and currently never fail
*/
func (service *Service) GetCharacterDetails(ctx context.Context, record source.CharacterRecord) (source.CharacterRecord, error) {
	if record.MalID == 0 && record.AniListID == 0 {
		return record, nil
	}

	key := detailKey(record.MalID, record.AniListID)
	if cached, ok := cacheGet[source.CharacterRecord](ctx, service.characters, key, service.log); ok {
		return cached, nil
	}

	var (
		wg            sync.WaitGroup
		aniListDetail *source.CharacterRecord
		jikanDetail   *source.CharacterRecord
	)

	if record.AniListID != 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			detail, err := service.aniList.CharacterDetails(ctx, record.AniListID)
			if err != nil {
				service.log.Warn("provider_details_failed", slog.String("provider", "anilist"), slog.Any("error", err))
				return
			}
			aniListDetail = detail
		}()
	}
	if record.MalID != 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			detail, err := service.jikan.CharacterDetails(ctx, record.MalID)
			if err != nil {
				service.log.Warn("provider_details_failed", slog.String("provider", "jikan"), slog.Any("error", err))
				return
			}
			jikanDetail = detail
		}()
	}
	wg.Wait()

	if aniListDetail == nil && jikanDetail == nil {
		return record, nil
	}

	// Detail data overlays the caller's record; AniList fields lead.
	merged := record
	if jikanDetail != nil {
		merged = mergeCharacters(*jikanDetail, merged)
	}
	if aniListDetail != nil {
		merged = mergeCharacters(*aniListDetail, merged)
	}
	merged.Source = sourceFor(merged.MalID, merged.AniListID)

	cacheSet(ctx, service.characters, key, merged, service.log)
	return merged, nil
}

/*
GetSeriesDetails enriches a series record via AniList's media-by-id lookup.
Best-effort: without an AniList ID, or when the lookup fails, the input is
returned unchanged.

Parameters:
  - ctx: context.Context
  - record: source.SeriesRecord

Returns:
  - source.SeriesRecord: The enriched record, or the input unchanged
  - error: Reserved; the lookup is best-effort and currently never fails
*/
func (service *Service) GetSeriesDetails(ctx context.Context, record source.SeriesRecord) (source.SeriesRecord, error) {
	if record.AniListID == 0 {
		return record, nil
	}

	key := detailKey(record.MalID, record.AniListID)
	if cached, ok := cacheGet[source.SeriesRecord](ctx, service.series, key, service.log); ok {
		return cached, nil
	}

	detail, err := service.media.SeriesDetails(ctx, record.AniListID)
	if err != nil || detail == nil {
		if err != nil {
			service.log.Warn("provider_details_failed", slog.String("provider", "anilist"), slog.Any("error", err))
		}
		return record, nil
	}

	merged := mergeSeries(*detail, record)
	merged.Source = sourceFor(merged.MalID, merged.AniListID)

	cacheSet(ctx, service.series, key, merged, service.log)
	return merged, nil
}

// # Detection

/*
DetectAnimeFromCharacter resolves a bare character name to the series the
character most likely belongs to.

Description: Jikan's native detection is consulted first and wins outright
above the confidence threshold. Otherwise AniList's detection gets the same
chance. When neither clears the bar, the low-confidence Jikan guess (or
nil) is returned so the caller can still show something.

Parameters:
  - ctx: context.Context
  - name: string (Character name as typed by the user)

Returns:
  - *source.Detection: Best available detection, possibly low-confidence, or nil
  - error: Reserved; detection degrades instead of failing
*/
func (service *Service) DetectAnimeFromCharacter(ctx context.Context, name string) (*source.Detection, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}

	jikanDetection, err := service.jikan.DetectAnime(ctx, trimmed)
	if err != nil {
		service.log.Warn("provider_detection_failed", slog.String("provider", "jikan"), slog.Any("error", err))
		jikanDetection = nil
	}
	if jikanDetection != nil && jikanDetection.Confidence > constants.DetectionThreshold {
		return jikanDetection, nil
	}

	aniListDetection, err := service.aniList.DetectAnime(ctx, trimmed)
	if err != nil {
		service.log.Warn("provider_detection_failed", slog.String("provider", "anilist"), slog.Any("error", err))
		aniListDetection = nil
	}
	if aniListDetection != nil && aniListDetection.Confidence > constants.DetectionThreshold {
		return aniListDetection, nil
	}

	return jikanDetection, nil
}

// # Folding

// foldCharacters merges the two providers' result sets by normalized
// character name. AniList rows seed the fold, so they define the base order
// and act as record A in every merge.
func foldCharacters(aniList, jikan []source.CharacterRecord) []source.CharacterRecord {
	index := make(map[string]int, len(aniList))
	merged := make([]source.CharacterRecord, 0, len(aniList)+len(jikan))

	for _, record := range aniList {
		index[namekey.From(record.Name)] = len(merged)
		merged = append(merged, record)
	}
	for _, record := range jikan {
		key := namekey.From(record.Name)
		if at, ok := index[key]; ok {
			merged[at] = mergeCharacters(merged[at], record)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, record)
	}

	return merged
}

// foldSeries is foldCharacters for series records.
func foldSeries(aniList, jikan []source.SeriesRecord) []source.SeriesRecord {
	index := make(map[string]int, len(aniList))
	merged := make([]source.SeriesRecord, 0, len(aniList)+len(jikan))

	for _, record := range aniList {
		index[namekey.From(record.Name)] = len(merged)
		merged = append(merged, record)
	}
	for _, record := range jikan {
		key := namekey.From(record.Name)
		if at, ok := index[key]; ok {
			merged[at] = mergeSeries(merged[at], record)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, record)
	}

	return merged
}

// # Cache Plumbing

func searchKey(query string) string {
	return "search:" + strings.ToLower(query)
}

func detailKey(malID, aniListID int) string {
	return fmt.Sprintf("details:%d:%d", malID, aniListID)
}

// sourceFor classifies a merged record by which provider IDs it ended up
// carrying.
func sourceFor(malID, aniListID int) source.DataSource {
	switch {
	case malID != 0 && aniListID != 0:
		return source.DataSourceUnified
	case aniListID != 0:
		return source.DataSourceAniList
	default:
		return source.DataSourceJikan
	}
}

func cacheGet[T any](ctx context.Context, store Store, key string, log *slog.Logger) (T, bool) {
	var value T

	raw, ok := store.Get(ctx, key)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn("cache_decode_failed", slog.String("key", key), slog.Any("error", err))
		return value, false
	}

	return value, true
}

func cacheSet[T any](ctx context.Context, store Store, key string, value T, log *slog.Logger) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn("cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	store.Set(ctx, key, raw)
}
