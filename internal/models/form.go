package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultFormTitle is used when a form is saved without a title.
const DefaultFormTitle = "Untitled Quiz"

// Form is the aggregate root: an ordered sequence of questions plus
// metadata. Forms are always read and written whole; the Questions
// column holds the embedded question array as a single jsonb document,
// and an update replaces the entire array.
type Form struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"omitempty,max=200"`
	Description string  `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	HeaderImage string  `json:"header_image" gorm:"type:text"`
	IsPublic    bool    `json:"is_public" gorm:"default:true"`

	// Submission window. Nil means unlimited / no deadline.
	ResponseLimit *int       `json:"response_limit" validate:"omitempty,min=0"`
	Deadline      *time.Time `json:"deadline"`

	// Questions holds the embedded question array; order is the
	// presentation and response order.
	Questions datatypes.JSON `json:"questions" gorm:"type:jsonb"`

	// Metadata
	CreatedBy string         `json:"created_by" gorm:"size:100;index;default:anonymous"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Form) TableName() string {
	return "forms"
}

// DecodeQuestions unmarshals the embedded question array.
func (f *Form) DecodeQuestions() ([]Question, error) {
	if len(f.Questions) == 0 {
		return []Question{}, nil
	}
	var questions []Question
	if err := json.Unmarshal(f.Questions, &questions); err != nil {
		return nil, fmt.Errorf("invalid questions payload: %w", err)
	}
	return questions, nil
}

// SetQuestions marshals the question array into the jsonb column.
func (f *Form) SetQuestions(questions []Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}
	f.Questions = data
	return nil
}

// FormSummary is the listing projection: form metadata without the
// full question payload.
type FormSummary struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	IsPublic      bool       `json:"is_public"`
	QuestionCount int        `json:"question_count"`
	ResponseLimit *int       `json:"response_limit,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
