package handlers

import (
	"context"

	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/domain/playground"
)

// ModelHandler serves the model catalog.
type ModelHandler struct {
	service playground.Service
}

func NewModelHandler(service playground.Service) *ModelHandler {
	return &ModelHandler{service: service}
}

func (h *ModelHandler) List(ctx context.Context) playground.Result[[]model.Model] {
	return record("list_models", h.service.ListModels(ctx))
}

func (h *ModelHandler) Get(ctx context.Context, id string) playground.Result[model.Model] {
	return record("get_model", h.service.GetModel(ctx, id))
}
