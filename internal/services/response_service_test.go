package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/formforge/form-service/internal/events"
	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
	"github.com/formforge/form-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResponseServiceForTest(formRepo *MockFormRepository, responseRepo *MockResponseRepository) (*responseService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewResponseService(formRepo, responseRepo, publisher, validator.New(), testLogger()).(*responseService)
	return service, publisher
}

// twoQuestionForm builds a public form with a categorize question
// ("q-cat") followed by a cloze question ("q-cloze").
func twoQuestionForm(t *testing.T) *models.Form {
	t.Helper()

	categorize := models.NewCategorizeQuestion()
	categorize.ID = "q-cat"
	cloze := models.NewClozeQuestion()
	cloze.ID = "q-cloze"

	form := &models.Form{ID: 1, Title: "Quiz", IsPublic: true}
	require.NoError(t, form.SetQuestions([]models.Question{categorize, cloze}))
	return form
}

func TestResponseService_Submit(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, publisher := newResponseServiceForTest(formRepo, responseRepo)

	formRepo.On("GetByID", mock.Anything, uint(1)).Return(twoQuestionForm(t), nil)
	responseRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.FormResponse).ID = 10
	}).Return(nil)

	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{
			{QuestionID: "q-cat", Answer: json.RawMessage(`{"0":"Category 2","1":"Category 1"}`)},
			{QuestionID: "q-cloze", Answer: json.RawMessage(`{"3":"blue"}`)},
		},
	}

	detail, err := service.Submit(context.Background(), 1, req)
	require.NoError(t, err)

	assert.Equal(t, uint(10), detail.ID)
	assert.Equal(t, uint(1), detail.FormID)
	require.Len(t, detail.Answers, 2)

	// Answers are stored exactly as submitted, tagged with the
	// question's type.
	assert.Equal(t, "q-cat", detail.Answers[0].QuestionID)
	assert.Equal(t, models.Categorize, detail.Answers[0].QuestionType)
	assert.JSONEq(t, `{"0":"Category 2","1":"Category 1"}`, string(detail.Answers[0].Answer))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventResponseSubmitted, published[0].Type)
}

func TestResponseService_Submit_PositionalReference(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	formRepo.On("GetByID", mock.Anything, uint(1)).Return(twoQuestionForm(t), nil)
	responseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	// "1" is not a question identifier, so it resolves as an index
	// into the form's current question order.
	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{
			{QuestionID: "1", Answer: json.RawMessage(`{"3":"blue"}`)},
		},
	}

	detail, err := service.Submit(context.Background(), 1, req)
	require.NoError(t, err)

	require.Len(t, detail.Answers, 1)
	assert.Equal(t, "q-cloze", detail.Answers[0].QuestionID)
	assert.Equal(t, models.Cloze, detail.Answers[0].QuestionType)
}

func TestResponseService_Submit_AnswersNeverGraded(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	formRepo.On("GetByID", mock.Anything, uint(1)).Return(twoQuestionForm(t), nil)
	responseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	// The cloze blank's word is "blue"; a submission of "red" is
	// accepted and stored untouched.
	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{
			{QuestionID: "q-cloze", Answer: json.RawMessage(`{"3":"red"}`)},
		},
	}

	detail, err := service.Submit(context.Background(), 1, req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"3":"red"}`, string(detail.Answers[0].Answer))
}

func TestResponseService_Submit_UnknownQuestionRef(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	formRepo.On("GetByID", mock.Anything, uint(1)).Return(twoQuestionForm(t), nil)

	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{
			{QuestionID: "q-missing", Answer: json.RawMessage(`{}`)},
		},
	}

	_, err := service.Submit(context.Background(), 1, req)
	require.Error(t, err)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "answers[0].questionId", validationErrs[0].Field)
	assert.Equal(t, "question_ref", validationErrs[0].Rule)

	responseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResponseService_Submit_FormNotFound(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	formRepo.On("GetByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{{QuestionID: "0", Answer: json.RawMessage(`{}`)}},
	}

	_, err := service.Submit(context.Background(), 9, req)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestResponseService_Submit_NotPublic(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	form := twoQuestionForm(t)
	form.IsPublic = false
	formRepo.On("GetByID", mock.Anything, uint(1)).Return(form, nil)

	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{{QuestionID: "q-cat", Answer: json.RawMessage(`{}`)}},
	}

	_, err := service.Submit(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrFormNotPublic)
	assert.True(t, IsSubmissionClosed(err))
}

func TestResponseService_Submit_DeadlinePassed(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	deadline := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	form := twoQuestionForm(t)
	form.Deadline = &deadline
	formRepo.On("GetByID", mock.Anything, uint(1)).Return(form, nil)
	responseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{{QuestionID: "q-cat", Answer: json.RawMessage(`{}`)}},
	}

	// One second after the deadline: rejected
	service.now = func() time.Time { return deadline.Add(time.Second) }
	_, err := service.Submit(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrSubmissionDeadlinePassed)

	// One second before: accepted
	service.now = func() time.Time { return deadline.Add(-time.Second) }
	_, err = service.Submit(context.Background(), 1, req)
	assert.NoError(t, err)
}

func TestResponseService_Submit_ResponseLimit(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	limit := 2
	form := twoQuestionForm(t)
	form.ResponseLimit = &limit
	formRepo.On("GetByID", mock.Anything, uint(1)).Return(form, nil)

	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{{QuestionID: "q-cat", Answer: json.RawMessage(`{}`)}},
	}

	// At limit-1 responses the submission still goes through
	responseRepo.On("CountByForm", mock.Anything, uint(1)).Return(int64(1), nil).Once()
	responseRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := service.Submit(context.Background(), 1, req)
	assert.NoError(t, err)

	// At the limit it is rejected
	responseRepo.On("CountByForm", mock.Anything, uint(1)).Return(int64(2), nil).Once()
	_, err = service.Submit(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrSubmissionLimitReached)

	responseRepo.AssertExpectations(t)
}

func TestResponseService_Submit_ZeroLimitMeansUnlimited(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	limit := 0
	form := twoQuestionForm(t)
	form.ResponseLimit = &limit
	formRepo.On("GetByID", mock.Anything, uint(1)).Return(form, nil)
	responseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := &SubmitResponseRequest{
		Answers: []AnswerSubmission{{QuestionID: "q-cat", Answer: json.RawMessage(`{}`)}},
	}

	_, err := service.Submit(context.Background(), 1, req)
	assert.NoError(t, err)
	responseRepo.AssertNotCalled(t, "CountByForm", mock.Anything, mock.Anything)
}

func TestResponseService_ListByForm_FormMissing(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	formRepo.On("ExistsByID", mock.Anything, uint(3)).Return(false, nil)

	_, _, err := service.ListByForm(context.Background(), 3, repositories.ResponseFilters{})
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestResponseService_GetByID_NotFound(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service, _ := newResponseServiceForTest(formRepo, responseRepo)

	responseRepo.On("GetByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, ErrResponseNotFound)
}
