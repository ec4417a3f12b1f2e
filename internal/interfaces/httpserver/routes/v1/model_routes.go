package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/playground-api/internal/interfaces/httpserver/handlers"
)

func registerModelRoutes(router gin.IRoutes, handler *handlers.ModelHandler) {
	router.GET("/models", listModels(handler))
	router.GET("/models/:id", getModel(handler))
}

// listModels godoc
// @Summary      List models
// @Description  Returns the model catalog in its configured order.
// @Tags         models
// @Produce      json
// @Success      200  {object}  modelListResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/models [get]
func listModels(handler *handlers.ModelHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeData(c, handler.List(c.Request.Context()))
	}
}

// getModel godoc
// @Summary      Get a model
// @Tags         models
// @Produce      json
// @Param        id   path      string  true  "Model ID"
// @Success      200  {object}  modelResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/models/{id} [get]
func getModel(handler *handlers.ModelHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeData(c, handler.Get(c.Request.Context(), c.Param("id")))
	}
}
