package postgres

import (
	"context"
	"fmt"

	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
	"gorm.io/gorm"
)

type FormPostgreSQL struct {
	db *gorm.DB
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{db: db}
}

// Create inserts a new form aggregate. The gateway owns the identifier
// and both timestamps.
func (f *FormPostgreSQL) Create(ctx context.Context, form *models.Form) error {
	if form.Title == "" {
		form.Title = models.DefaultFormTitle
	}
	if err := f.db.WithContext(ctx).Create(form).Error; err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}
	return nil
}

// GetByID retrieves a form by ID
func (f *FormPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	var form models.Form
	if err := f.db.WithContext(ctx).First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// Update replaces the whole aggregate, embedded question array
// included.
func (f *FormPostgreSQL) Update(ctx context.Context, form *models.Form) error {
	if form.Title == "" {
		form.Title = models.DefaultFormTitle
	}
	result := f.db.WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", form.ID).
		Select("title", "description", "header_image", "is_public", "response_limit", "deadline", "questions").
		Updates(form)
	if result.Error != nil {
		return fmt.Errorf("failed to update form: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes a form. Responses referencing the form are left
// in place; they hold a reference-only form ID.
func (f *FormPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := f.db.WithContext(ctx).Delete(&models.Form{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete form: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns forms ordered by creation time, newest first.
func (f *FormPostgreSQL) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	query := f.db.WithContext(ctx).Model(&models.Form{})

	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.IsPublic != nil {
		query = query.Where("is_public = ?", *filters.IsPublic)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count forms: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var forms []*models.Form
	if err := query.Order("created_at DESC").Find(&forms).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, total, nil
}

// ExistsByID checks whether a form with the given ID exists
func (f *FormPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := f.db.WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check form existence: %w", err)
	}
	return count > 0, nil
}

// GetFormStats returns response counts and timing for a form
func (f *FormPostgreSQL) GetFormStats(ctx context.Context, id uint) (*repositories.FormStats, error) {
	form, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := form.DecodeQuestions()
	if err != nil {
		return nil, err
	}

	stats := &repositories.FormStats{QuestionCount: len(questions)}

	row := f.db.WithContext(ctx).
		Model(&models.FormResponse{}).
		Where("form_id = ?", id).
		Select("COUNT(*), MIN(submitted_at), MAX(submitted_at)").
		Row()
	if err := row.Scan(&stats.TotalResponses, &stats.FirstResponse, &stats.LastResponse); err != nil {
		return nil, fmt.Errorf("failed to load form stats: %w", err)
	}
	return stats, nil
}
