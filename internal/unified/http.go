// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unified

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/kessen/internal/platform/request"
	"github.com/taibuivan/kessen/internal/platform/respond"
	"github.com/taibuivan/kessen/internal/source"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/characters", handler.searchCharacters)
	router.Post("/characters/details", handler.characterDetails)
	router.Get("/series", handler.searchSeries)
	router.Post("/series/details", handler.seriesDetails)
	router.Get("/detect", handler.detectAnime)
}

func (handler *Handler) searchCharacters(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.SearchCharacters(request.Context(), requestutil.Query(request, "q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, records, len(records))
}

func (handler *Handler) searchSeries(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.SearchSeries(request.Context(), requestutil.Query(request, "q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, records, len(records))
}

func (handler *Handler) characterDetails(writer http.ResponseWriter, request *http.Request) {
	var input source.CharacterRecord
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetCharacterDetails(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

func (handler *Handler) seriesDetails(writer http.ResponseWriter, request *http.Request) {
	var input source.SeriesRecord
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetSeriesDetails(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

func (handler *Handler) detectAnime(writer http.ResponseWriter, request *http.Request) {
	detection, err := handler.service.DetectAnimeFromCharacter(request.Context(), requestutil.Query(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detection)
}
