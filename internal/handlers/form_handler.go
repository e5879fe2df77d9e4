package handlers

import (
	"net/http"

	"github.com/formforge/form-service/internal/repositories"
	"github.com/formforge/form-service/internal/services"
	"github.com/formforge/form-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	BaseHandler
	formService services.FormService
}

func NewFormHandler(formService services.FormService, logger utils.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
	}
}

// CreateForm creates a new form
// @Summary Create form
// @Description Creates a new form with its question array
// @Tags forms
// @Accept json
// @Produce json
// @Param form body services.CreateFormRequest true "Form data"
// @Success 201 {object} services.FormDetail
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	h.LogRequest(c, "Creating form")

	var req services.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	createdBy := c.GetHeader("X-User")
	if createdBy == "" {
		createdBy = "anonymous"
	}

	form, err := h.formService.Create(c.Request.Context(), &req, createdBy)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// GetForm retrieves a form by ID
// @Summary Get form
// @Description Retrieves a form aggregate including its questions
// @Tags forms
// @Produce json
// @Param id path uint true "Form ID"
// @Success 200 {object} services.FormDetail
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	form, err := h.formService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// UpdateForm replaces a form, question array included
// @Summary Update form
// @Description Re-validates and replaces the full form representation
// @Tags forms
// @Accept json
// @Produce json
// @Param id path uint true "Form ID"
// @Param form body services.UpdateFormRequest true "Form data"
// @Success 200 {object} services.FormDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id} [put]
func (h *FormHandler) UpdateForm(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Updating form", "form_id", id)

	var req services.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	form, err := h.formService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// DeleteForm deletes a form
// @Summary Delete form
// @Description Deletes a form together with its embedded questions
// @Tags forms
// @Produce json
// @Param id path uint true "Form ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting form", "form_id", id)

	if err := h.formService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Form deleted successfully"})
}

// GetFormStats reports submission statistics for a form
// @Summary Form statistics
// @Description Reports response count and first/last submission times
// @Tags forms
// @Produce json
// @Param id path uint true "Form ID"
// @Success 200 {object} repositories.FormStats
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id}/stats [get]
func (h *FormHandler) GetFormStats(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	stats, err := h.formService.GetStats(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListForms lists form summaries, newest first
// @Summary List forms
// @Description Lists form metadata ordered by creation time, descending
// @Tags forms
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	filters := repositories.FormFilters{
		Limit:  parseQueryInt(c, "limit", 50),
		Offset: parseQueryInt(c, "offset", 0),
	}

	summaries, total, err := h.formService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  summaries,
		"total": total,
	})
}
