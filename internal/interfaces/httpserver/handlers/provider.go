package handlers

import (
	"github.com/janhq/playground-api/internal/domain/playground"
	"github.com/janhq/playground-api/internal/infrastructure/metrics"
	"github.com/janhq/playground-api/internal/infrastructure/observability"
)

// KindValidation marks requests rejected by the HTTP layer before they
// reach the playground service.
const KindValidation playground.ErrorKind = "ValidationError"

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Model      *ModelHandler
	Template   *TemplateHandler
	Completion *CompletionHandler
	Chat       *ChatHandler
}

// NewProvider constructs the handler provider with the playground service.
func NewProvider(service playground.Service, sanitizer *observability.Sanitizer) *Provider {
	return &Provider{
		Model:      NewModelHandler(service),
		Template:   NewTemplateHandler(service),
		Completion: NewCompletionHandler(service, sanitizer),
		Chat:       NewChatHandler(service, sanitizer),
	}
}

func record[T any](operation string, res playground.Result[T]) playground.Result[T] {
	metrics.RecordOperation(operation, res.Success, string(res.Error))
	return res
}
