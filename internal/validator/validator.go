package validator

import (
	"reflect"
	"strings"

	"github.com/formforge/form-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines struct-tag
// validation with the question-level rules.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// GetQuestionValidator returns the question validator (compatibility method)
func (v *Validator) GetQuestionValidator() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	// Question type validation
	validate.RegisterValidation("question_type", validateQuestionType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validType := range models.AllQuestionTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}
