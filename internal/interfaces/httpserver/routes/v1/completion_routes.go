package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/interfaces/httpserver/handlers"
)

func registerCompletionRoutes(router gin.IRoutes, handler *handlers.CompletionHandler) {
	router.POST("/completions", complete(handler))
	router.POST("/config/validate", validateConfig(handler))
	router.GET("/config/schema", configSchema(handler))
}

// configSchema godoc
// @Summary      Generation parameter schema
// @Description  JSON Schema of the completion configuration, including the enforced bounds and defaults.
// @Tags         completions
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /v1/config/schema [get]
func configSchema(handler *handlers.CompletionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, handler.ConfigSchema())
	}
}

// complete godoc
// @Summary      Mock a completion
// @Description  Omitted config fields take their default values.
// @Tags         completions
// @Accept       json
// @Produce      json
// @Param        body  body      handlers.CompletionBody  true  "Prompt, model and configuration"
// @Success      200   {object}  completionResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/completions [post]
func complete(handler *handlers.CompletionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := handlers.NewCompletionBody()
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(err)
			fail(c, http.StatusBadRequest, handlers.KindValidation, "Invalid request body")
			return
		}
		writeData(c, handler.Complete(c.Request.Context(), body))
	}
}

// validateConfig godoc
// @Summary      Validate generation parameters
// @Description  Reports every out of range parameter in one message.
// @Tags         completions
// @Accept       json
// @Produce      json
// @Param        body  body      model.Config  true  "Configuration"
// @Success      200   {object}  validateResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/config/validate [post]
func validateConfig(handler *handlers.CompletionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := model.DefaultConfig()
		if err := c.ShouldBindJSON(&cfg); err != nil {
			_ = c.Error(err)
			fail(c, http.StatusBadRequest, handlers.KindValidation, "Invalid request body")
			return
		}
		writeData(c, handler.ValidateConfig(cfg))
	}
}
