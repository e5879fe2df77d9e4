package validator

import (
	"encoding/json"
	"fmt"

	"github.com/formforge/form-service/internal/models"
)

// QuestionValidator applies the per-type structural rules to a form's
// question array before persistence. It collects every violation, not
// just the first, and addresses each one with a positional field path
// (e.g. "questions[2].blanks[1].position") so a caller can highlight
// the exact offending element.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestions validates a form's full question array.
func (v *QuestionValidator) ValidateQuestions(questions []models.Question) ValidationErrors {
	var errs ValidationErrors
	for i := range questions {
		path := fmt.Sprintf("questions[%d]", i)
		errs = append(errs, v.ValidateQuestion(path, &questions[i])...)
	}
	return errs
}

// ValidateQuestion validates a single question at the given field path.
func (v *QuestionValidator) ValidateQuestion(path string, question *models.Question) ValidationErrors {
	switch question.Type {
	case models.Categorize:
		return v.validateCategorize(path, question.Content)
	case models.Cloze:
		return v.validateCloze(path, question.Content)
	case models.Comprehension:
		return v.validateComprehension(path, question.Content)
	default:
		return ValidationErrors{{
			Field:   path + ".type",
			Message: "must be a valid question type (categorize, cloze, comprehension)",
			Value:   string(question.Type),
			Rule:    "question_type",
		}}
	}
}

func (v *QuestionValidator) validateCategorize(path string, raw json.RawMessage) ValidationErrors {
	var content models.CategorizeContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return invalidContent(path, "categorize", err)
	}

	var errs ValidationErrors
	if content.QuestionText == "" {
		errs = append(errs, required(path+".questionText"))
	}
	if len(content.Categories) == 0 {
		errs = append(errs, nonEmpty(path+".categories"))
	}
	if len(content.Items) == 0 {
		errs = append(errs, nonEmpty(path+".items"))
	}
	for i, item := range content.Items {
		itemPath := fmt.Sprintf("%s.items[%d]", path, i)
		if item.Label == "" {
			errs = append(errs, required(itemPath+".label"))
		}
		// Whether correctCategory names an existing category is
		// not checked; only emptiness is rejected.
		if item.CorrectCategory == "" {
			errs = append(errs, required(itemPath+".correctCategory"))
		}
	}
	return errs
}

func (v *QuestionValidator) validateCloze(path string, raw json.RawMessage) ValidationErrors {
	var content models.ClozeContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return invalidContent(path, "cloze", err)
	}

	var errs ValidationErrors
	if content.QuestionText == "" {
		errs = append(errs, required(path+".questionText"))
	}
	if content.Sentence == "" {
		errs = append(errs, required(path+".sentence"))
	}
	if len(content.Blanks) == 0 {
		errs = append(errs, nonEmpty(path+".blanks"))
	}
	for i, blank := range content.Blanks {
		blankPath := fmt.Sprintf("%s.blanks[%d]", path, i)
		if blank.Word == "" {
			errs = append(errs, required(blankPath+".word"))
		}
		// Positions beyond the tokenized sentence or duplicated across
		// blanks pass structural validation; only negatives are
		// rejected.
		if blank.Position < 0 {
			errs = append(errs, ValidationError{
				Field:   blankPath + ".position",
				Message: "must be a non-negative integer",
				Value:   blank.Position,
				Rule:    "min",
			})
		}
		if len(blank.Options) == 0 {
			errs = append(errs, nonEmpty(blankPath+".options"))
		}
	}
	return errs
}

func (v *QuestionValidator) validateComprehension(path string, raw json.RawMessage) ValidationErrors {
	var content models.ComprehensionContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return invalidContent(path, "comprehension", err)
	}

	var errs ValidationErrors
	if content.Passage == "" {
		errs = append(errs, required(path+".passage"))
	}
	if len(content.SubQuestions) == 0 {
		errs = append(errs, nonEmpty(path+".subQuestions"))
	}
	for i, sub := range content.SubQuestions {
		subPath := fmt.Sprintf("%s.subQuestions[%d]", path, i)
		if sub.QuestionText == "" {
			errs = append(errs, required(subPath+".questionText"))
		}
		if len(sub.Options) == 0 {
			errs = append(errs, nonEmpty(subPath+".options"))
		}
		if sub.CorrectAnswer == "" {
			errs = append(errs, required(subPath+".correctAnswer"))
		} else if len(sub.Options) > 0 && !contains(sub.Options, sub.CorrectAnswer) {
			errs = append(errs, ValidationError{
				Field:   subPath + ".correctAnswer",
				Message: "must be one of the sub-question's options",
				Value:   sub.CorrectAnswer,
				Rule:    "oneof",
			})
		}
	}
	return errs
}

func required(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required", Rule: "required"}
}

func nonEmpty(field string) ValidationError {
	return ValidationError{Field: field, Message: "must not be empty", Rule: "min"}
}

func invalidContent(path, questionType string, err error) ValidationErrors {
	return ValidationErrors{{
		Field:   path + ".content",
		Message: fmt.Sprintf("invalid %s content: %s", questionType, err.Error()),
		Rule:    "content",
	}}
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
