package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"github.com/janhq/playground-api/internal/domain/playground"
	"github.com/janhq/playground-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/playground-api/internal/interfaces/httpserver/middlewares"
)

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat/completions", createChatCompletion(handler))
}

// createChatCompletion godoc
// @Summary      OpenAI compatible mock chat completion
// @Description  Answers the last user message with the mocked completion. Streaming is not supported.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      openai.ChatCompletionRequest  true  "Chat completion request"
// @Success      200   {object}  openai.ChatCompletionResponse
// @Failure      400   {object}  openai.ErrorResponse
// @Router       /v1/chat/completions [post]
func createChatCompletion(handler *handlers.ChatHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req openai.ChatCompletionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(err)
			openAIError(c, http.StatusBadRequest, handlers.KindValidation, "Invalid request body")
			return
		}

		resp, err := handler.CreateChatCompletion(c.Request.Context(), req)
		if err != nil {
			var pe *playground.Error
			if !errors.As(err, &pe) {
				pe = &playground.Error{Kind: playground.KindInternal, Message: err.Error()}
			}
			openAIError(c, statusFor(pe.Kind), pe.Kind, pe.Message)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func openAIError(c *gin.Context, status int, kind playground.ErrorKind, message string) {
	errType := "invalid_request_error"
	if status >= http.StatusInternalServerError {
		errType = "server_error"
	}
	c.Set(middlewares.OutcomeKey, string(kind))
	c.JSON(status, openai.ErrorResponse{
		Error: &openai.APIError{
			Code:    string(kind),
			Message: message,
			Type:    errType,
		},
	})
}
