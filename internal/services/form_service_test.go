package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/formforge/form-service/internal/cache"
	"github.com/formforge/form-service/internal/events"
	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
	"github.com/formforge/form-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockFormRepository is a mock implementation of FormRepository
type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormRepository) Update(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFormRepository) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Form), args.Get(1).(int64), args.Error(2)
}

func (m *MockFormRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFormRepository) GetFormStats(ctx context.Context, id uint) (*repositories.FormStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.FormStats), args.Error(1)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, response *models.FormResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByID(ctx context.Context, id uint) (*models.FormResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FormResponse), args.Error(1)
}

func (m *MockResponseRepository) GetByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.FormResponse, int64, error) {
	args := m.Called(ctx, formID, filters)
	return args.Get(0).([]*models.FormResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockResponseRepository) CountByForm(ctx context.Context, formID uint) (int64, error) {
	args := m.Called(ctx, formID)
	return args.Get(0).(int64), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFormServiceForTest(repo *MockFormRepository) (FormService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewFormService(repo, cache.NewNoopCache(), publisher, validator.New(), testLogger())
	return service, publisher
}

func TestFormService_Create(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, publisher := newFormServiceForTest(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(form *models.Form) bool {
		return form.Title == "My Quiz" && form.IsPublic
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Form).ID = 42
	}).Return(nil)

	req := &CreateFormRequest{
		Title: "My Quiz",
		Questions: []models.Question{
			models.NewCategorizeQuestion(),
			models.NewClozeQuestion(),
		},
	}

	detail, err := service.Create(context.Background(), req, "alice")
	require.NoError(t, err)

	assert.Equal(t, uint(42), detail.ID)
	assert.Equal(t, "My Quiz", detail.Title)
	assert.True(t, detail.IsPublic)
	require.Len(t, detail.Questions, 2)

	// Every question gets a stable identifier on first save
	for _, question := range detail.Questions {
		assert.NotEmpty(t, question.ID)
	}

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventFormCreated, published[0].Type)

	mockRepo.AssertExpectations(t)
}

func TestFormService_Create_DefaultTitle(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, _ := newFormServiceForTest(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	detail, err := service.Create(context.Background(), &CreateFormRequest{}, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFormTitle, detail.Title)
}

func TestFormService_Create_InvalidQuestion(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, publisher := newFormServiceForTest(mockRepo)

	req := &CreateFormRequest{
		Title: "Broken",
		Questions: []models.Question{
			{Type: "essay", Content: json.RawMessage(`{}`)},
		},
	}

	_, err := service.Create(context.Background(), req, "alice")
	require.Error(t, err)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "questions[0].type", validationErrs[0].Field)

	// Nothing persisted, nothing published
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestFormService_GetByID_NotFound(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, _ := newFormServiceForTest(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestFormService_Update_ReplacesQuestions(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, publisher := newFormServiceForTest(mockRepo)

	existing := &models.Form{ID: 7, Title: "Old title", IsPublic: true}
	oldQuestion := models.NewCategorizeQuestion()
	oldQuestion.ID = "q-old"
	require.NoError(t, existing.SetQuestions([]models.Question{oldQuestion}))

	mockRepo.On("GetByID", mock.Anything, uint(7)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	replacement := models.NewClozeQuestion()
	req := &UpdateFormRequest{
		Title:     "New title",
		Questions: []models.Question{replacement},
	}

	detail, err := service.Update(context.Background(), 7, req)
	require.NoError(t, err)

	assert.Equal(t, "New title", detail.Title)
	require.Len(t, detail.Questions, 1)
	assert.Equal(t, models.Cloze, detail.Questions[0].Type)
	assert.NotEmpty(t, detail.Questions[0].ID)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventFormUpdated, published[0].Type)
}

func TestFormService_Update_KeepsExistingQuestionIDs(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, _ := newFormServiceForTest(mockRepo)

	existing := &models.Form{ID: 7, Title: "Quiz", IsPublic: true}
	require.NoError(t, existing.SetQuestions(nil))

	mockRepo.On("GetByID", mock.Anything, uint(7)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	kept := models.NewCategorizeQuestion()
	kept.ID = "q-stable"
	added := models.NewClozeQuestion()

	detail, err := service.Update(context.Background(), 7, &UpdateFormRequest{
		Title:     "Quiz",
		Questions: []models.Question{kept, added},
	})
	require.NoError(t, err)

	assert.Equal(t, "q-stable", detail.Questions[0].ID)
	assert.NotEmpty(t, detail.Questions[1].ID)
	assert.NotEqual(t, "q-stable", detail.Questions[1].ID)
}

func TestFormService_Delete_NotFound(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, _ := newFormServiceForTest(mockRepo)

	mockRepo.On("Delete", mock.Anything, uint(5)).Return(gorm.ErrRecordNotFound)

	err := service.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestFormService_GetStats(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, _ := newFormServiceForTest(mockRepo)

	mockRepo.On("GetFormStats", mock.Anything, uint(1)).
		Return(&repositories.FormStats{TotalResponses: 3, QuestionCount: 2}, nil)

	stats, err := service.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalResponses)
	assert.Equal(t, 2, stats.QuestionCount)

	mockRepo.On("GetFormStats", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	_, err = service.GetStats(context.Background(), 9)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestFormService_List(t *testing.T) {
	mockRepo := &MockFormRepository{}
	service, _ := newFormServiceForTest(mockRepo)

	form := &models.Form{ID: 1, Title: "Quiz", IsPublic: true}
	require.NoError(t, form.SetQuestions([]models.Question{
		models.NewCategorizeQuestion(),
		models.NewComprehensionQuestion(),
	}))

	mockRepo.On("List", mock.Anything, mock.Anything).Return([]*models.Form{form}, int64(1), nil)

	summaries, total, err := service.List(context.Background(), repositories.FormFilters{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Quiz", summaries[0].Title)
	assert.Equal(t, 2, summaries[0].QuestionCount)
}
