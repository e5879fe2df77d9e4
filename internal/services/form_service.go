package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/formforge/form-service/internal/cache"
	"github.com/formforge/form-service/internal/events"
	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
	"github.com/formforge/form-service/internal/validator"
	"github.com/google/uuid"
)

const formCacheTTL = 5 * time.Minute

type formService struct {
	repo      repositories.FormRepository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func NewFormService(
	repo repositories.FormRepository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
) FormService {
	return &formService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *formService) Create(ctx context.Context, req *CreateFormRequest, createdBy string) (*FormDetail, error) {
	s.logger.Info("Creating form", "title", req.Title, "questions", len(req.Questions))

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	form := &models.Form{
		Title:         req.Title,
		Description:   req.Description,
		HeaderImage:   req.HeaderImage,
		IsPublic:      true,
		ResponseLimit: req.ResponseLimit,
		Deadline:      req.Deadline,
		CreatedBy:     createdBy,
	}
	if req.IsPublic != nil {
		form.IsPublic = *req.IsPublic
	}
	if form.Title == "" {
		form.Title = models.DefaultFormTitle
	}

	questions := assignQuestionIDs(req.Questions)
	if err := form.SetQuestions(questions); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.publish(ctx, events.NewDomainEvent(events.EventFormCreated, events.FormCreatedEvent{
		FormID:        form.ID,
		Title:         form.Title,
		QuestionCount: len(questions),
		CreatedBy:     form.CreatedBy,
	}))

	s.logger.Info("Form created successfully", "form_id", form.ID)
	return buildFormDetail(form)
}

func (s *formService) GetByID(ctx context.Context, id uint) (*FormDetail, error) {
	cacheKey := formCacheKey(id)

	var cached FormDetail
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	form, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	detail, err := buildFormDetail(form)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, detail, formCacheTTL); err != nil {
		s.logger.Warn("Failed to cache form", "form_id", id, "error", err)
	}
	return detail, nil
}

func (s *formService) Update(ctx context.Context, id uint, req *UpdateFormRequest) (*FormDetail, error) {
	s.logger.Info("Updating form", "form_id", id)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	form, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	form.Title = req.Title
	form.Description = req.Description
	form.HeaderImage = req.HeaderImage
	form.ResponseLimit = req.ResponseLimit
	form.Deadline = req.Deadline
	if req.IsPublic != nil {
		form.IsPublic = *req.IsPublic
	}
	if form.Title == "" {
		form.Title = models.DefaultFormTitle
	}

	// Full replacement of the embedded question array; newly added
	// questions get their identifier here.
	questions := assignQuestionIDs(req.Questions)
	if err := form.SetQuestions(questions); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, form); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	if err := s.cache.Delete(ctx, formCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate form cache", "form_id", id, "error", err)
	}

	s.publish(ctx, events.NewDomainEvent(events.EventFormUpdated, events.FormUpdatedEvent{
		FormID:        form.ID,
		Title:         form.Title,
		QuestionCount: len(questions),
	}))

	s.logger.Info("Form updated successfully", "form_id", id)
	return buildFormDetail(form)
}

func (s *formService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting form", "form_id", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrFormNotFound
		}
		return fmt.Errorf("failed to delete form: %w", err)
	}

	if err := s.cache.Delete(ctx, formCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate form cache", "form_id", id, "error", err)
	}

	s.publish(ctx, events.NewDomainEvent(events.EventFormDeleted, events.FormDeletedEvent{FormID: id}))
	return nil
}

func (s *formService) List(ctx context.Context, filters repositories.FormFilters) ([]*models.FormSummary, int64, error) {
	forms, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}

	summaries := make([]*models.FormSummary, 0, len(forms))
	for _, form := range forms {
		questions, err := form.DecodeQuestions()
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, &models.FormSummary{
			ID:            form.ID,
			Title:         form.Title,
			Description:   form.Description,
			IsPublic:      form.IsPublic,
			QuestionCount: len(questions),
			ResponseLimit: form.ResponseLimit,
			Deadline:      form.Deadline,
			CreatedAt:     form.CreatedAt,
			UpdatedAt:     form.UpdatedAt,
		})
	}
	return summaries, total, nil
}

// GetStats reports response counts and submission timing for a form.
func (s *formService) GetStats(ctx context.Context, id uint) (*repositories.FormStats, error) {
	stats, err := s.repo.GetFormStats(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to load form stats: %w", err)
	}
	return stats, nil
}

// ===== HELPERS =====

// validateRequest runs struct-tag validation followed by the per-type
// question rules, recovering everything into a structured error list.
func (s *formService) validateRequest(req *CreateFormRequest) error {
	if err := s.validator.ValidateStruct(req); err != nil {
		return validator.ToValidationErrors(err)
	}
	if errs := s.validator.Question().ValidateQuestions(req.Questions); len(errs) > 0 {
		return errs
	}
	return nil
}

// publish sends a domain event; publish failures are logged and never
// fail the request.
func (s *formService) publish(ctx context.Context, event *events.DomainEvent) {
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

// assignQuestionIDs gives every question without a persisted
// identifier a fresh one. Identifiers survive subsequent updates so
// responses can reference questions stably.
func assignQuestionIDs(questions []models.Question) []models.Question {
	assigned := make([]models.Question, len(questions))
	copy(assigned, questions)
	for i := range assigned {
		if assigned[i].ID == "" {
			assigned[i].ID = uuid.NewString()
		}
	}
	return assigned
}

func buildFormDetail(form *models.Form) (*FormDetail, error) {
	questions, err := form.DecodeQuestions()
	if err != nil {
		return nil, err
	}
	return &FormDetail{
		ID:            form.ID,
		Title:         form.Title,
		Description:   form.Description,
		HeaderImage:   form.HeaderImage,
		IsPublic:      form.IsPublic,
		ResponseLimit: form.ResponseLimit,
		Deadline:      form.Deadline,
		Questions:     questions,
		CreatedBy:     form.CreatedBy,
		CreatedAt:     form.CreatedAt,
		UpdatedAt:     form.UpdatedAt,
	}, nil
}

func formCacheKey(id uint) string {
	return fmt.Sprintf("form:%d", id)
}
