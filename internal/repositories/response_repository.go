package repositories

import (
	"context"

	"github.com/formforge/form-service/internal/models"
)

// ResponseRepository interface for response documents. Responses are
// append-only: there is deliberately no update operation, a submitted
// response is immutable.
type ResponseRepository interface {
	Create(ctx context.Context, response *models.FormResponse) error
	GetByID(ctx context.Context, id uint) (*models.FormResponse, error)

	// Query operations
	GetByForm(ctx context.Context, formID uint, filters ResponseFilters) ([]*models.FormResponse, int64, error)
	CountByForm(ctx context.Context, formID uint) (int64, error)
}
