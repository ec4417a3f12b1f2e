package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/playground-api/internal/domain/playground"
	"github.com/janhq/playground-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/playground-api/internal/interfaces/httpserver/middlewares"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerModelRoutes(group, r.handlers.Model)
	registerTemplateRoutes(group, r.handlers.Template)
	registerCompletionRoutes(group, r.handlers.Completion)
	registerChatRoutes(group, r.handlers.Chat)
}

// statusFor maps a failed envelope to its HTTP status.
func statusFor(kind playground.ErrorKind) int {
	switch {
	case kind.IsNotFound():
		return http.StatusNotFound
	case kind.IsValidation(), kind == handlers.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes a failed envelope and remembers its kind for the request log.
func fail(c *gin.Context, status int, kind playground.ErrorKind, message string) {
	c.Set(middlewares.OutcomeKey, string(kind))
	c.JSON(status, errorResponse{
		Success: false,
		Error:   string(kind),
		Message: message,
	})
}

func writeData[T any](c *gin.Context, res playground.Result[T]) {
	if !res.Success {
		fail(c, statusFor(res.Error), res.Error, res.Message)
		return
	}
	c.JSON(http.StatusOK, dataResponse[T]{Success: true, Data: res.Data, Message: res.Message})
}
