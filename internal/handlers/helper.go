package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric path parameter. On failure it writes a
// 400 response and returns 0.
func parseIDParam(c *gin.Context, param string) uint {
	idStr := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0
	}
	return uint(id)
}

// parseQueryInt parses an optional integer query parameter with a
// fallback default.
func parseQueryInt(c *gin.Context, name string, defaultValue int) int {
	value := c.Query(name)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}
