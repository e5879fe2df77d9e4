package repositories

import (
	"context"

	"github.com/formforge/form-service/internal/models"
)

// FormRepository interface for form aggregate operations. Forms are
// read and written whole; there is no partial update path for the
// embedded question array.
type FormRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id uint) error // Soft delete

	// Query operations
	List(ctx context.Context, filters FormFilters) ([]*models.Form, int64, error)

	// Validation helpers
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// Statistics
	GetFormStats(ctx context.Context, id uint) (*FormStats, error)
}
