package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/playground-api/internal/interfaces/httpserver/handlers"
)

func registerTemplateRoutes(router gin.IRoutes, handler *handlers.TemplateHandler) {
	router.GET("/templates", getTemplates(handler))
	router.POST("/templates", createTemplate(handler))
	router.PUT("/templates", updateTemplate(handler))
	router.DELETE("/templates", deleteTemplate(handler))
	router.POST("/templates/reset", resetTemplates(handler))
}

// getTemplates godoc
// @Summary      List, search or fetch templates
// @Description  With id, returns that template under "data". With a non-empty query, returns matches under "data". Otherwise returns the full list under "templates".
// @Tags         templates
// @Produce      json
// @Param        id     query     string  false  "Template ID"
// @Param        query  query     string  false  "Case-insensitive search over name, prompt and description"
// @Success      200    {object}  templatesResponse
// @Failure      404    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /v1/templates [get]
func getTemplates(handler *handlers.TemplateHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if id := c.Query("id"); id != "" {
			writeData(c, handler.Get(ctx, id))
			return
		}

		if query := c.Query("query"); query != "" {
			writeData(c, handler.Search(ctx, query))
			return
		}

		res := handler.List(ctx)
		if !res.Success {
			fail(c, http.StatusInternalServerError, res.Error, res.Message)
			return
		}
		c.JSON(http.StatusOK, templatesResponse{Success: true, Templates: res.Data, Message: res.Message})
	}
}

// createTemplate godoc
// @Summary      Save a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body  body      handlers.CreateTemplateBody  true  "Template"
// @Success      201   {object}  templateResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/templates [post]
func createTemplate(handler *handlers.TemplateHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body handlers.CreateTemplateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(err)
			fail(c, http.StatusBadRequest, handlers.KindValidation, "Invalid request body")
			return
		}

		res := handler.Create(c.Request.Context(), body)
		if !res.Success {
			fail(c, statusFor(res.Error), res.Error, res.Message)
			return
		}
		c.JSON(http.StatusCreated, templateResponse{Success: true, Template: res.Data, Message: res.Message})
	}
}

// updateTemplate godoc
// @Summary      Update a template
// @Description  Empty name or prompt values are ignored.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body  body      handlers.UpdateTemplateBody  true  "Fields to change"
// @Success      200   {object}  templateResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/templates [put]
func updateTemplate(handler *handlers.TemplateHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body handlers.UpdateTemplateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(err)
			fail(c, http.StatusBadRequest, handlers.KindValidation, "Invalid request body")
			return
		}

		res := handler.Update(c.Request.Context(), body)
		if !res.Success {
			fail(c, statusFor(res.Error), res.Error, res.Message)
			return
		}
		c.JSON(http.StatusOK, templateResponse{Success: true, Template: res.Data, Message: res.Message})
	}
}

// deleteTemplate godoc
// @Summary      Delete a template
// @Tags         templates
// @Produce      json
// @Param        id   query     string  true  "Template ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/templates [delete]
func deleteTemplate(handler *handlers.TemplateHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := handler.Delete(c.Request.Context(), c.Query("id"))
		if !res.Success {
			fail(c, statusFor(res.Error), res.Error, res.Message)
			return
		}
		c.JSON(http.StatusOK, messageResponse{Success: true, Message: res.Message})
	}
}

// resetTemplates godoc
// @Summary      Restore the default templates
// @Tags         templates
// @Produce      json
// @Success      200  {object}  templatesResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/templates/reset [post]
func resetTemplates(handler *handlers.TemplateHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := handler.Reset(c.Request.Context())
		if !res.Success {
			fail(c, http.StatusInternalServerError, res.Error, res.Message)
			return
		}
		c.JSON(http.StatusOK, templatesResponse{Success: true, Templates: res.Data, Message: res.Message})
	}
}
