// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/kessen/internal/platform/request"
	"github.com/taibuivan/kessen/internal/platform/respond"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/battles", handler.simulateBattle)
}

type battleRequest struct {
	Combatants []Combatant `json:"combatants"`
}

func (handler *Handler) simulateBattle(writer http.ResponseWriter, request *http.Request) {
	var input battleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.engine.Simulate(request.Context(), input.Combatants)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
