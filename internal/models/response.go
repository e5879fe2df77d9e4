package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Answer captures one respondent answer for one question. The Answer
// payload's shape follows the referenced question's type; it is stored
// exactly as submitted and is never compared against the question's
// correct fields (no grading engine exists).
type Answer struct {
	QuestionID   string          `json:"questionId" validate:"required"`
	QuestionType QuestionType    `json:"questionType" validate:"required,question_type"`
	Answer       json.RawMessage `json:"answer" validate:"required"`
}

// Per-type answer payloads. Map keys are positional indices encoded as
// strings (JSON object keys are always strings).

// CategorizeAnswer maps item index to the chosen category.
type CategorizeAnswer map[string]string

// ClozeAnswer maps blank position to the chosen option.
type ClozeAnswer map[string]string

// ComprehensionAnswer maps sub-question index to the chosen option.
type ComprehensionAnswer map[string]string

// FormResponse is one respondent's complete answer set for a form. A
// response is created once at submission time and never amended; it
// holds a reference-only FormID, so deleting a form does not cascade to
// its responses.
type FormResponse struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	FormID uint `json:"form_id" gorm:"not null;index"`

	// Answers holds the embedded answer array, ordered as submitted.
	Answers datatypes.JSON `json:"answers" gorm:"type:jsonb"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (FormResponse) TableName() string {
	return "responses"
}

// DecodeAnswers unmarshals the embedded answer array.
func (r *FormResponse) DecodeAnswers() ([]Answer, error) {
	if len(r.Answers) == 0 {
		return []Answer{}, nil
	}
	var answers []Answer
	if err := json.Unmarshal(r.Answers, &answers); err != nil {
		return nil, fmt.Errorf("invalid answers payload: %w", err)
	}
	return answers, nil
}

// SetAnswers marshals the answer array into the jsonb column.
func (r *FormResponse) SetAnswers(answers []Answer) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	r.Answers = data
	return nil
}
