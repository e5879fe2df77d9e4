package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/formforge/form-service/internal/events"
	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
	"github.com/formforge/form-service/internal/validator"
)

type responseService struct {
	formRepo     repositories.FormRepository
	responseRepo repositories.ResponseRepository
	publisher    events.EventPublisher
	validator    *validator.Validator
	logger       *slog.Logger
	now          func() time.Time
}

func NewResponseService(
	formRepo repositories.FormRepository,
	responseRepo repositories.ResponseRepository,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
) ResponseService {
	return &responseService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		publisher:    publisher,
		validator:    v,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit records one respondent's answer set for a form. Preconditions
// are checked in order: the form must exist, must still be accepting
// responses, and every answer must reference a question belonging to
// the form. The stored answers are never compared against the
// questions' correct fields; no grading happens here or anywhere else.
//
// Resubmission is not deduplicated: submitting twice creates two
// response documents.
func (s *responseService) Submit(ctx context.Context, formID uint, req *SubmitResponseRequest) (*ResponseDetail, error) {
	s.logger.Info("Submitting response", "form_id", formID, "answers", len(req.Answers))

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	if err := s.checkAccepting(ctx, form); err != nil {
		return nil, err
	}

	questions, err := form.DecodeQuestions()
	if err != nil {
		return nil, err
	}

	answers, err := resolveAnswers(questions, req.Answers)
	if err != nil {
		return nil, err
	}

	response := &models.FormResponse{
		FormID:      form.ID,
		SubmittedAt: s.now(),
	}
	if err := response.SetAnswers(answers); err != nil {
		return nil, err
	}

	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	if err := s.publisher.PublishEvent(ctx, events.NewDomainEvent(events.EventResponseSubmitted, events.ResponseSubmittedEvent{
		ResponseID:  response.ID,
		FormID:      form.ID,
		AnswerCount: len(answers),
		SubmittedAt: response.SubmittedAt,
	})); err != nil {
		s.logger.Error("Failed to publish event", "event_type", events.EventResponseSubmitted, "error", err)
	}

	s.logger.Info("Response submitted successfully", "response_id", response.ID, "form_id", form.ID)
	return buildResponseDetail(response)
}

func (s *responseService) GetByID(ctx context.Context, id uint) (*ResponseDetail, error) {
	response, err := s.responseRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return buildResponseDetail(response)
}

func (s *responseService) ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*ResponseDetail, int64, error) {
	exists, err := s.formRepo.ExistsByID(ctx, formID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check form existence: %w", err)
	}
	if !exists {
		return nil, 0, ErrFormNotFound
	}

	responses, total, err := s.responseRepo.GetByForm(ctx, formID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list responses: %w", err)
	}

	details := make([]*ResponseDetail, 0, len(responses))
	for _, response := range responses {
		detail, err := buildResponseDetail(response)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, detail)
	}
	return details, total, nil
}

// ===== HELPERS =====

// checkAccepting decides whether the form still takes submissions. The
// response count check and the later insert are separate round-trips;
// eventual consistency between count and limit is acceptable.
func (s *responseService) checkAccepting(ctx context.Context, form *models.Form) error {
	if !form.IsPublic {
		return ErrFormNotPublic
	}
	if form.Deadline != nil && s.now().After(*form.Deadline) {
		return ErrSubmissionDeadlinePassed
	}
	if form.ResponseLimit != nil && *form.ResponseLimit > 0 {
		count, err := s.responseRepo.CountByForm(ctx, form.ID)
		if err != nil {
			return fmt.Errorf("failed to count responses: %w", err)
		}
		if count >= int64(*form.ResponseLimit) {
			return ErrSubmissionLimitReached
		}
	}
	return nil
}

// resolveAnswers maps every submitted answer to a question of the
// form. A reference is either a persisted question identifier or a
// positional index; indices are resolved against the form's CURRENT
// question order at submission time. If the questions were reordered
// after the respondent loaded the form, an index-based answer silently
// binds to the question now at that position. That is a hazard of
// index addressing, not an error this layer can detect.
func resolveAnswers(questions []models.Question, submissions []AnswerSubmission) ([]models.Answer, error) {
	byID := make(map[string]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	var errs ValidationErrors
	answers := make([]models.Answer, 0, len(submissions))
	for i, submission := range submissions {
		question, ok := byID[submission.QuestionID]
		if !ok {
			if index, err := strconv.Atoi(submission.QuestionID); err == nil && index >= 0 && index < len(questions) {
				question = &questions[index]
			}
		}
		if question == nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("answers[%d].questionId", i),
				Message: "does not reference a question of this form",
				Value:   submission.QuestionID,
				Rule:    "question_ref",
			})
			continue
		}
		answers = append(answers, models.Answer{
			QuestionID:   question.ID,
			QuestionType: question.Type,
			Answer:       submission.Answer,
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return answers, nil
}

func buildResponseDetail(response *models.FormResponse) (*ResponseDetail, error) {
	answers, err := response.DecodeAnswers()
	if err != nil {
		return nil, err
	}
	return &ResponseDetail{
		ID:          response.ID,
		FormID:      response.FormID,
		Answers:     answers,
		SubmittedAt: response.SubmittedAt,
	}, nil
}
