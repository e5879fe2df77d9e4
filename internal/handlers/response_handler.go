package handlers

import (
	"net/http"

	"github.com/formforge/form-service/internal/repositories"
	"github.com/formforge/form-service/internal/services"
	"github.com/formforge/form-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewResponseHandler(responseService services.ResponseService, exportService services.ExportService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
		exportService:   exportService,
	}
}

// SubmitResponse accepts a respondent's answers for a form
// @Summary Submit response
// @Description Records submitted answers verbatim for a public, open form
// @Tags responses
// @Accept json
// @Produce json
// @Param form_id path uint true "Form ID"
// @Param response body services.SubmitResponseRequest true "Answers"
// @Success 201 {object} services.ResponseDetail
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /forms/{form_id}/responses [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	formID := parseIDParam(c, "id")
	if formID == 0 {
		return
	}

	h.LogRequest(c, "Submitting response", "form_id", formID)

	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.responseService.Submit(c.Request.Context(), formID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponses lists all responses submitted to a form
// @Summary List responses
// @Description Lists submitted responses for a form, newest first
// @Tags responses
// @Produce json
// @Param form_id path uint true "Form ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{form_id}/responses [get]
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	formID := parseIDParam(c, "id")
	if formID == 0 {
		return
	}

	filters := repositories.ResponseFilters{
		Limit:  parseQueryInt(c, "limit", 100),
		Offset: parseQueryInt(c, "offset", 0),
	}

	responses, total, err := h.responseService.ListByForm(c.Request.Context(), formID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  responses,
		"total": total,
	})
}

// GetResponse retrieves a single submitted response
// @Summary Get response
// @Description Retrieves one submitted response by ID
// @Tags responses
// @Produce json
// @Param id path uint true "Response ID"
// @Success 200 {object} services.ResponseDetail
// @Failure 404 {object} ErrorResponse
// @Router /responses/{id} [get]
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	response, err := h.responseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExportResponses streams a form's responses as an xlsx workbook
// @Summary Export responses
// @Description Downloads all responses of a form as an Excel file
// @Tags responses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param form_id path uint true "Form ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /forms/{form_id}/responses/export [get]
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	formID := parseIDParam(c, "id")
	if formID == 0 {
		return
	}

	h.LogRequest(c, "Exporting responses", "form_id", formID)

	data, filename, err := h.exportService.ExportResponses(c.Request.Context(), formID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
