package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type FormFilters struct {
	CreatedBy *string    `json:"created_by"`
	IsPublic  *bool      `json:"is_public"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

type ResponseFilters struct {
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type FormStats struct {
	TotalResponses int        `json:"total_responses"`
	QuestionCount  int        `json:"question_count"`
	FirstResponse  *time.Time `json:"first_response,omitempty"`
	LastResponse   *time.Time `json:"last_response,omitempty"`
}

// IsNotFoundError reports whether err means the requested row does not
// exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
