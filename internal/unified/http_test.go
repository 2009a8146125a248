// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unified

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kessen/internal/source"
)

func newTestRouter(t *testing.T, aniList, jikan *fakeAdapter, media SeriesDetailer) chi.Router {
	t.Helper()

	router := chi.NewRouter()
	NewHandler(newTestService(t, aniList, jikan, media)).RegisterRoutes(router)
	return router
}

func TestSearchCharactersEndpoint_DownProvidersStillTwoHundred(t *testing.T) {
	router := newTestRouter(t, &fakeAdapter{failSearches: 10}, &fakeAdapter{failSearches: 10}, &fakeSeriesDetailer{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/characters?q=luffy", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data  []source.CharacterRecord `json:"data"`
		Total int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
	assert.Zero(t, envelope.Total)
}

func TestSeriesDetailsEndpoint_EnrichesRecord(t *testing.T) {
	media := &fakeSeriesDetailer{detail: &source.SeriesRecord{
		AniListID:   21,
		Name:        "ONE PIECE",
		Description: "Gol D. Roger's treasure awaits.",
		Popularity:  350000,
		Source:      source.DataSourceAniList,
	}}
	router := newTestRouter(t, &fakeAdapter{}, &fakeAdapter{}, media)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/series/details",
		strings.NewReader(`{"aniListId": 21, "name": "One Piece"}`)))

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data source.SeriesRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "ONE PIECE", envelope.Data.Name)
	assert.Equal(t, 350000, envelope.Data.Popularity)
}

func TestSeriesDetailsEndpoint_RejectsBadPayload(t *testing.T) {
	router := newTestRouter(t, &fakeAdapter{}, &fakeAdapter{}, &fakeSeriesDetailer{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/series/details",
		strings.NewReader(`{"aniListId": `)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
