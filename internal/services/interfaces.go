package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
)

// ===== REQUEST / RESPONSE DTOS =====

type CreateFormRequest struct {
	Title         string            `json:"title" validate:"omitempty,max=200"`
	Description   string            `json:"description" validate:"omitempty,max=1000"`
	HeaderImage   string            `json:"header_image" validate:"omitempty,max=2000"`
	IsPublic      *bool             `json:"is_public"`
	ResponseLimit *int              `json:"response_limit" validate:"omitempty,min=0"`
	Deadline      *time.Time        `json:"deadline"`
	Questions     []models.Question `json:"questions"`
}

// UpdateFormRequest carries the full replacement representation; an
// update swaps the entire question array, there is no nested patch.
type UpdateFormRequest = CreateFormRequest

type FormDetail struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	HeaderImage   string            `json:"header_image,omitempty"`
	IsPublic      bool              `json:"is_public"`
	ResponseLimit *int              `json:"response_limit,omitempty"`
	Deadline      *time.Time        `json:"deadline,omitempty"`
	Questions     []models.Question `json:"questions"`
	CreatedBy     string            `json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// AnswerSubmission is one submitted answer. QuestionID may be either a
// persisted question identifier or a positional index ("0", "1", ...);
// positional references are resolved against the form's current
// question order at submission time.
type AnswerSubmission struct {
	QuestionID string          `json:"questionId" validate:"required"`
	Answer     json.RawMessage `json:"answer" validate:"required"`
}

type SubmitResponseRequest struct {
	Answers []AnswerSubmission `json:"answers" validate:"required,min=1,dive"`
}

type ResponseDetail struct {
	ID          uint            `json:"id"`
	FormID      uint            `json:"form_id"`
	Answers     []models.Answer `json:"answers"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// ===== SERVICE INTERFACES =====

type FormService interface {
	Create(ctx context.Context, req *CreateFormRequest, createdBy string) (*FormDetail, error)
	GetByID(ctx context.Context, id uint) (*FormDetail, error)
	Update(ctx context.Context, id uint, req *UpdateFormRequest) (*FormDetail, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.FormFilters) ([]*models.FormSummary, int64, error)
	GetStats(ctx context.Context, id uint) (*repositories.FormStats, error)
}

type ResponseService interface {
	Submit(ctx context.Context, formID uint, req *SubmitResponseRequest) (*ResponseDetail, error)
	GetByID(ctx context.Context, id uint) (*ResponseDetail, error)
	ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*ResponseDetail, int64, error)
}

type UploadService interface {
	UploadImage(ctx context.Context, data []byte, mimeType, filename string) (*UploadResult, error)
	DeleteImage(ctx context.Context, publicID string) error
}

type ExportService interface {
	// ExportResponses renders a form's responses as an xlsx workbook.
	ExportResponses(ctx context.Context, formID uint) ([]byte, string, error)
}

// ServiceManager bundles all services for handler wiring.
type ServiceManager interface {
	Form() FormService
	Response() ResponseService
	Upload() UploadService
	Export() ExportService
}

type serviceManager struct {
	form     FormService
	response ResponseService
	upload   UploadService
	export   ExportService
}

func NewServiceManager(form FormService, response ResponseService, upload UploadService, export ExportService) ServiceManager {
	return &serviceManager{
		form:     form,
		response: response,
		upload:   upload,
		export:   export,
	}
}

func (m *serviceManager) Form() FormService         { return m.form }
func (m *serviceManager) Response() ResponseService { return m.response }
func (m *serviceManager) Upload() UploadService     { return m.upload }
func (m *serviceManager) Export() ExportService     { return m.export }
