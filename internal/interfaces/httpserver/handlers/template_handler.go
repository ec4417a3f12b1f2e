package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/janhq/playground-api/internal/domain/playground"
	"github.com/janhq/playground-api/internal/domain/template"
	"github.com/janhq/playground-api/internal/infrastructure/metrics"
)

// CreateTemplateBody is the JSON body accepted by POST /v1/templates.
type CreateTemplateBody struct {
	Name        string  `json:"name" validate:"required"`
	Prompt      string  `json:"prompt" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateTemplateBody is the JSON body accepted by PUT /v1/templates.
// Empty name or prompt values are ignored.
type UpdateTemplateBody struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name,omitempty"`
	Prompt      string  `json:"prompt,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TemplateHandler invokes the playground service for template use cases
// and keeps the live template gauge current.
type TemplateHandler struct {
	service  playground.Service
	validate *validator.Validate
}

func NewTemplateHandler(service playground.Service) *TemplateHandler {
	return &TemplateHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *TemplateHandler) List(ctx context.Context) playground.Result[[]template.Template] {
	res := record("list_templates", h.service.ListTemplates(ctx))
	if res.Success {
		metrics.SetTemplatesLive(len(res.Data))
	}
	return res
}

func (h *TemplateHandler) Get(ctx context.Context, id string) playground.Result[template.Template] {
	return record("get_template", h.service.GetTemplate(ctx, id))
}

func (h *TemplateHandler) Search(ctx context.Context, query string) playground.Result[[]template.Template] {
	return record("search_templates", h.service.SearchTemplates(ctx, query))
}

func (h *TemplateHandler) Create(ctx context.Context, body CreateTemplateBody) playground.Result[template.Template] {
	if err := h.validate.Struct(body); err != nil {
		return record("save_template", playground.Failure[template.Template](KindValidation, "Name and prompt are required"))
	}
	res := record("save_template", h.service.SaveTemplate(ctx, template.CreateTemplateRequest{
		Name:        body.Name,
		Prompt:      body.Prompt,
		Description: body.Description,
	}))
	if res.Success {
		h.refreshLive(ctx)
	}
	return res
}

func (h *TemplateHandler) Update(ctx context.Context, body UpdateTemplateBody) playground.Result[template.Template] {
	if err := h.validate.Struct(body); err != nil {
		return record("update_template", playground.Failure[template.Template](KindValidation, "Template ID is required"))
	}

	req := template.UpdateTemplateRequest{Description: body.Description}
	if body.Name != "" {
		req.Name = &body.Name
	}
	if body.Prompt != "" {
		req.Prompt = &body.Prompt
	}
	return record("update_template", h.service.UpdateTemplate(ctx, body.ID, req))
}

func (h *TemplateHandler) Delete(ctx context.Context, id string) playground.Result[bool] {
	if id == "" {
		return record("delete_template", playground.Failure[bool](KindValidation, "Template ID is required"))
	}
	res := record("delete_template", h.service.DeleteTemplate(ctx, id))
	if res.Success {
		h.refreshLive(ctx)
	}
	return res
}

func (h *TemplateHandler) Reset(ctx context.Context) playground.Result[[]template.Template] {
	res := record("reset_templates", h.service.ResetTemplates(ctx))
	if res.Success {
		metrics.SetTemplatesLive(len(res.Data))
	}
	return res
}

// refreshLive sets the live template gauge from the repository count. A
// failed count leaves the previous value in place.
func (h *TemplateHandler) refreshLive(ctx context.Context) {
	if n, err := h.service.CountTemplates(ctx); err == nil {
		metrics.SetTemplatesLive(n)
	}
}
