package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	formRepo     repositories.FormRepository
	responseRepo repositories.ResponseRepository
	logger       *slog.Logger
}

func NewExportService(
	formRepo repositories.FormRepository,
	responseRepo repositories.ResponseRepository,
	logger *slog.Logger,
) ExportService {
	return &exportService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		logger:       logger,
	}
}

// ExportResponses renders all responses of a form as an xlsx workbook:
// one column per question, one row per response. Answers are written
// exactly as submitted; no correctness judgment is applied.
func (s *exportService) ExportResponses(ctx context.Context, formID uint) ([]byte, string, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrFormNotFound
		}
		return nil, "", fmt.Errorf("failed to get form: %w", err)
	}

	questions, err := form.DecodeQuestions()
	if err != nil {
		return nil, "", err
	}

	responses, _, err := s.responseRepo.GetByForm(ctx, formID, repositories.ResponseFilters{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list responses: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Responses"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Write headers
	headers := []string{"Response ID", "Submitted At"}
	for i, question := range questions {
		headers = append(headers, fmt.Sprintf("Q%d (%s)", i+1, question.Type))
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build cell name: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
	}

	// Write data
	for rowIndex, response := range responses {
		answers, err := response.DecodeAnswers()
		if err != nil {
			return nil, "", err
		}
		byQuestion := make(map[string]models.Answer, len(answers))
		for _, answer := range answers {
			byQuestion[answer.QuestionID] = answer
		}

		row := []interface{}{response.ID, response.SubmittedAt.Format("2006-01-02 15:04:05")}
		for _, question := range questions {
			if answer, ok := byQuestion[question.ID]; ok {
				row = append(row, string(answer.Answer))
			} else {
				row = append(row, "")
			}
		}
		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return nil, "", fmt.Errorf("failed to build cell name: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("form-%d-responses.xlsx", formID)
	s.logger.Info("Exported responses", "form_id", formID, "responses", len(responses))
	return buf.Bytes(), filename, nil
}
