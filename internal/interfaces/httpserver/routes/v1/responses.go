package v1

import (
	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/domain/template"
)

type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"TemplateNotFound"`
	Message string `json:"message" example:"No template found with id: tpl-missing"`
}

type dataResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// Concrete envelopes, named for the API docs.
type (
	modelListResponse    = dataResponse[[]model.Model]
	modelResponse        = dataResponse[model.Model]
	templateDataResponse = dataResponse[template.Template]
	templateListData     = dataResponse[[]template.Template]
	completionResponse   = dataResponse[string]
	validateResponse     = dataResponse[bool]
)

type templatesResponse struct {
	Success   bool                `json:"success" example:"true"`
	Templates []template.Template `json:"templates"`
	Message   string              `json:"message" example:"Templates fetched successfully"`
}

type templateResponse struct {
	Success  bool              `json:"success" example:"true"`
	Template template.Template `json:"template"`
	Message  string            `json:"message" example:"Template saved successfully"`
}

type messageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Template deleted successfully"`
}
