package handlers

import (
	"context"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"

	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/domain/playground"
	"github.com/janhq/playground-api/internal/infrastructure/metrics"
	"github.com/janhq/playground-api/internal/infrastructure/observability"
)

// CompletionBody is the JSON body accepted by POST /v1/completions.
type CompletionBody struct {
	Prompt  string       `json:"prompt"`
	ModelID string       `json:"modelId"`
	Config  model.Config `json:"config"`
}

// NewCompletionBody returns a body whose config starts from the defaults,
// so a request may send only the parameters it changes.
func NewCompletionBody() CompletionBody {
	return CompletionBody{Config: model.DefaultConfig()}
}

// CompletionHandler produces mocked completions.
type CompletionHandler struct {
	service   playground.Service
	sanitizer *observability.Sanitizer
}

func NewCompletionHandler(service playground.Service, sanitizer *observability.Sanitizer) *CompletionHandler {
	return &CompletionHandler{service: service, sanitizer: sanitizer}
}

// Complete rejects an out of range configuration before asking the
// service for a completion.
func (h *CompletionHandler) Complete(ctx context.Context, body CompletionBody) playground.Result[string] {
	observability.AddSpanAttributes(ctx,
		attribute.String("model.id", body.ModelID),
		attribute.String("prompt.preview", h.sanitizer.Preview(body.Prompt)),
	)
	if check := h.service.ValidateConfig(body.Config); !check.Success {
		return record("complete_prompt", playground.Failure[string](check.Error, check.Message))
	}
	res := record("complete_prompt", h.service.CompletePrompt(ctx, body.Prompt, body.ModelID, body.Config))
	if res.Success {
		metrics.RecordCompletion(body.ModelID)
	}
	return res
}

// ConfigSchema returns the JSON Schema of the generation parameters.
func (h *CompletionHandler) ConfigSchema() *jsonschema.Schema {
	return model.ConfigSchema()
}

func (h *CompletionHandler) ValidateConfig(cfg model.Config) playground.Result[bool] {
	return record("validate_config", h.service.ValidateConfig(cfg))
}
