package handlers

import (
	"errors"
	"net/http"

	"github.com/formforge/form-service/internal/services"
	"github.com/formforge/form-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and error mapping for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
		"request_id", c.GetHeader("X-Request-ID"),
	}
	fields = append(fields, additionalFields...)
	h.logger.Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)
	h.logger.LogError(err, message, fields...)
}

// handleServiceError translates service errors into HTTP responses.
// Validation failures always come back as a structured field list;
// storage and other internal failures are logged with their cause and
// surfaced as an opaque 500.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrFormNotPublic):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Form is not public",
			Code:    "not_public",
		})
	case errors.Is(err, services.ErrSubmissionDeadlinePassed):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Form deadline has passed",
			Code:    "deadline_passed",
		})
	case errors.Is(err, services.ErrSubmissionLimitReached):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Message: "Form response limit reached",
			Code:    "limit_reached",
		})
	case errors.Is(err, services.ErrUploadNotImage),
		errors.Is(err, services.ErrUploadTooLarge),
		errors.Is(err, services.ErrUploadEmpty):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: err.Error(),
		})
	default:
		h.LogError(c, err, "Internal server error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
