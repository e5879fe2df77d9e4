package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type QuestionType string

const (
	Categorize    QuestionType = "categorize"
	Cloze         QuestionType = "cloze"
	Comprehension QuestionType = "comprehension"
)

// AllQuestionTypes lists every supported question type tag.
var AllQuestionTypes = []QuestionType{Categorize, Cloze, Comprehension}

// IsValid reports whether the type tag is one of the known question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case Categorize, Cloze, Comprehension:
		return true
	}
	return false
}

// Question is the storage envelope shared by all question types. The
// type-specific payload lives in Content and is decoded through the
// typed accessors below; every consumer switches exhaustively on Type.
type Question struct {
	ID      string          `json:"id,omitempty"` // assigned on first save
	Type    QuestionType    `json:"type" validate:"required,question_type"`
	Image   string          `json:"image,omitempty"`
	Content json.RawMessage `json:"content" validate:"required"`
}

type CategorizeItem struct {
	Label           string `json:"label"`
	CorrectCategory string `json:"correctCategory"`
}

type CategorizeContent struct {
	QuestionText string           `json:"questionText"`
	Description  string           `json:"description,omitempty"`
	Categories   []string         `json:"categories"`
	Items        []CategorizeItem `json:"items"`
}

type ClozeBlank struct {
	Word     string   `json:"word"`
	Position int      `json:"position"` // token index into the whitespace-split sentence
	Options  []string `json:"options"`
}

type ClozeContent struct {
	QuestionText string       `json:"questionText"`
	Sentence     string       `json:"sentence"`
	Blanks       []ClozeBlank `json:"blanks"`
}

type SubQuestion struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type ComprehensionContent struct {
	Passage      string        `json:"passage"`
	SubQuestions []SubQuestion `json:"subQuestions"`
}

// Tokens splits the sentence on whitespace. Blank positions index into
// this slice.
func (c ClozeContent) Tokens() []string {
	return strings.Fields(c.Sentence)
}

// ===== CONTENT ACCESSORS =====

func (q *Question) CategorizeContent() (*CategorizeContent, error) {
	if q.Type != Categorize {
		return nil, fmt.Errorf("question is %s, not %s", q.Type, Categorize)
	}
	var content CategorizeContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid categorize content: %w", err)
	}
	return &content, nil
}

func (q *Question) ClozeContent() (*ClozeContent, error) {
	if q.Type != Cloze {
		return nil, fmt.Errorf("question is %s, not %s", q.Type, Cloze)
	}
	var content ClozeContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid cloze content: %w", err)
	}
	return &content, nil
}

func (q *Question) ComprehensionContent() (*ComprehensionContent, error) {
	if q.Type != Comprehension {
		return nil, fmt.Errorf("question is %s, not %s", q.Type, Comprehension)
	}
	var content ComprehensionContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid comprehension content: %w", err)
	}
	return &content, nil
}

// WithContent returns a copy of the question carrying the re-encoded
// content payload.
func (q Question) WithContent(content interface{}) (Question, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return q, fmt.Errorf("failed to marshal content: %w", err)
	}
	q.Content = data
	return q, nil
}

// ===== CANONICAL CONSTRUCTORS =====
//
// Each constructor produces a starter question that already satisfies
// the validation rules for its type, so an editor never holds a
// type-valid-but-empty question.

func NewCategorizeQuestion() Question {
	return Question{
		Type: Categorize,
		Content: mustMarshal(CategorizeContent{
			QuestionText: "Untitled question",
			Categories:   []string{"Category 1", "Category 2"},
			Items: []CategorizeItem{
				{Label: "Item 1", CorrectCategory: "Category 1"},
				{Label: "Item 2", CorrectCategory: "Category 2"},
			},
		}),
	}
}

func NewClozeQuestion() Question {
	return Question{
		Type: Cloze,
		Content: mustMarshal(ClozeContent{
			QuestionText: "Fill in the blanks",
			Sentence:     "The sky is blue",
			Blanks: []ClozeBlank{
				{Word: "blue", Position: 3, Options: []string{"blue"}},
			},
		}),
	}
}

func NewComprehensionQuestion() Question {
	return Question{
		Type: Comprehension,
		Content: mustMarshal(ComprehensionContent{
			Passage: "Enter your passage here...",
			SubQuestions: []SubQuestion{
				{
					QuestionText:  "Question 1",
					Options:       []string{"Option A", "Option B", "Option C", "Option D"},
					CorrectAnswer: "Option A",
				},
			},
		}),
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
