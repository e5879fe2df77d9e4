package handlers

import (
	"io"
	"net/http"

	"github.com/formforge/form-service/internal/services"
	"github.com/formforge/form-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   NewBaseHandler(logger),
		uploadService: uploadService,
	}
}

// UploadImage accepts a multipart image upload
// @Summary Upload image
// @Description Stores an image (max 5 MB) and returns its public URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} services.UploadResult
// @Failure 400 {object} ErrorResponse
// @Router /upload/image [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.LogRequest(c, "Uploading image")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing image file",
			Details: "expected multipart field 'image'",
		})
		return
	}

	if fileHeader.Size > services.MaxUploadSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Image exceeds the 5 MB limit",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	result, err := h.uploadService.UploadImage(c.Request.Context(), data, mimeType, fileHeader.Filename)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// DeleteImage removes a previously uploaded image
// @Summary Delete image
// @Description Deletes an uploaded image by its public ID
// @Tags uploads
// @Produce json
// @Param public_id path string true "Public ID"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /upload/{public_id} [delete]
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	publicID := c.Param("public_id")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing public_id",
		})
		return
	}

	if err := h.uploadService.DeleteImage(c.Request.Context(), publicID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Image deleted successfully"})
}
