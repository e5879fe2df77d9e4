package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func TestExportService_ExportResponses(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service := NewExportService(formRepo, responseRepo, testLogger())

	form := twoQuestionForm(t)
	formRepo.On("GetByID", mock.Anything, uint(1)).Return(form, nil)

	response := &models.FormResponse{
		ID:          10,
		FormID:      1,
		SubmittedAt: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, response.SetAnswers([]models.Answer{
		{QuestionID: "q-cat", QuestionType: models.Categorize, Answer: json.RawMessage(`{"0":"Fruit"}`)},
	}))
	responseRepo.On("GetByForm", mock.Anything, uint(1), repositories.ResponseFilters{}).
		Return([]*models.FormResponse{response}, int64(1), nil)

	data, filename, err := service.ExportResponses(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "form-1-responses.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Responses")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Response ID", "Submitted At", "Q1 (categorize)", "Q2 (cloze)"}, rows[0])

	// One row per response; the unanswered cloze column stays empty
	assert.Equal(t, "10", rows[1][0])
	assert.Equal(t, "2024-06-01 09:30:00", rows[1][1])
	assert.JSONEq(t, `{"0":"Fruit"}`, rows[1][2])
}

func TestExportService_ExportResponses_FormNotFound(t *testing.T) {
	formRepo := &MockFormRepository{}
	responseRepo := &MockResponseRepository{}
	service := NewExportService(formRepo, responseRepo, testLogger())

	formRepo.On("GetByID", mock.Anything, uint(4)).Return(nil, gorm.ErrRecordNotFound)

	_, _, err := service.ExportResponses(context.Background(), 4)
	assert.ErrorIs(t, err, ErrFormNotFound)
}
