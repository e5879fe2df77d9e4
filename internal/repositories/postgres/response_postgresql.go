package postgres

import (
	"context"
	"fmt"

	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
	"gorm.io/gorm"
)

// ResponsePostgreSQL persists responses in the responses table.
type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Create appends one response document. There is no update path:
// responses are immutable once written.
func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.FormResponse) error {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

// GetByID retrieves a response by ID
func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id uint) (*models.FormResponse, error) {
	var response models.FormResponse
	if err := r.db.WithContext(ctx).First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByForm returns a form's responses ordered by submission time,
// newest first.
func (r *ResponsePostgreSQL) GetByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.FormResponse, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FormResponse{}).
		Where("form_id = ?", formID)

	if filters.DateFrom != nil {
		query = query.Where("submitted_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("submitted_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count responses: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var responses []*models.FormResponse
	if err := query.Order("submitted_at DESC").Find(&responses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, total, nil
}

// CountByForm counts all responses recorded for a form. Used for the
// response-limit precondition; the count and the subsequent insert are
// not transactional, so a narrow race under concurrent writers can
// admit one over-limit submission. Accepted bound, not a correctness
// target.
func (r *ResponsePostgreSQL) CountByForm(ctx context.Context, formID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FormResponse{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
