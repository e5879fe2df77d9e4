package handlers

import (
	"net/http"

	"github.com/formforge/form-service/internal/services"
	"github.com/formforge/form-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// HandlerManager bundles all HTTP handlers
type HandlerManager struct {
	Form     *FormHandler
	Response *ResponseHandler
	Upload   *UploadHandler
}

// NewHandlerManager creates handlers for every service
func NewHandlerManager(services services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		Form:     NewFormHandler(services.Form(), logger),
		Response: NewResponseHandler(services.Response(), services.Export(), logger),
		Upload:   NewUploadHandler(services.Upload(), logger),
	}
}

// SetupRoutes registers all API routes. uploadDir, when non-empty, is
// served statically under /uploads so locally stored images resolve.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, uploadDir string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "form-service"})
	})

	if uploadDir != "" {
		router.Static("/uploads", uploadDir)
	}

	v1 := router.Group("/api/v1")
	{
		forms := v1.Group("/forms")
		{
			forms.POST("", hm.Form.CreateForm)
			forms.GET("", hm.Form.ListForms)
			forms.GET("/:id", hm.Form.GetForm)
			forms.PUT("/:id", hm.Form.UpdateForm)
			forms.DELETE("/:id", hm.Form.DeleteForm)
			forms.GET("/:id/stats", hm.Form.GetFormStats)
		}

		// Gin requires the same wildcard name per path segment, so
		// the form ID parameter stays :id here too.
		formResponses := v1.Group("/forms/:id/responses")
		{
			formResponses.POST("", hm.Response.SubmitResponse)
			formResponses.GET("", hm.Response.ListResponses)
			formResponses.GET("/export", hm.Response.ExportResponses)
		}

		responses := v1.Group("/responses")
		{
			responses.GET("/:id", hm.Response.GetResponse)
		}

		upload := v1.Group("/upload")
		{
			upload.POST("/image", hm.Upload.UploadImage)
			upload.DELETE("/:public_id", hm.Upload.DeleteImage)
		}
	}
}
