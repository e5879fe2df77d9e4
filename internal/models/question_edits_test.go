package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeContent_RemoveCategory_CascadesItems(t *testing.T) {
	content := CategorizeContent{
		QuestionText: "Sort the words",
		Categories:   []string{"Fruit", "Animal"},
		Items: []CategorizeItem{
			{Label: "Apple", CorrectCategory: "Fruit"},
			{Label: "Dog", CorrectCategory: "Animal"},
			{Label: "Banana", CorrectCategory: "Fruit"},
		},
	}

	edited, err := content.RemoveCategory(0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Animal"}, edited.Categories)
	require.Len(t, edited.Items, 1)
	assert.Equal(t, "Dog", edited.Items[0].Label)

	// Original value untouched
	assert.Len(t, content.Items, 3)
	assert.Len(t, content.Categories, 2)
}

func TestCategorizeContent_RemoveCategory_OutOfRange(t *testing.T) {
	content := CategorizeContent{Categories: []string{"Fruit"}}

	_, err := content.RemoveCategory(5)
	assert.Error(t, err)

	_, err = content.RemoveCategory(-1)
	assert.Error(t, err)
}

func TestCategorizeContent_RenameCategory_RepointsItems(t *testing.T) {
	content := CategorizeContent{
		Categories: []string{"Fruit", "Animal"},
		Items: []CategorizeItem{
			{Label: "Apple", CorrectCategory: "Fruit"},
			{Label: "Dog", CorrectCategory: "Animal"},
		},
	}

	edited, err := content.RenameCategory(0, "Food")
	require.NoError(t, err)

	assert.Equal(t, []string{"Food", "Animal"}, edited.Categories)
	assert.Equal(t, "Food", edited.Items[0].CorrectCategory)
	assert.Equal(t, "Animal", edited.Items[1].CorrectCategory)

	// Item count never changes under rename
	assert.Len(t, edited.Items, len(content.Items))
}

func TestCategorizeContent_AddAndRemoveItem(t *testing.T) {
	content := CategorizeContent{Categories: []string{"Fruit"}}

	edited := content.AddItem("Apple", "Fruit")
	require.Len(t, edited.Items, 1)
	assert.Equal(t, "Apple", edited.Items[0].Label)

	edited, err := edited.RemoveItem(0)
	require.NoError(t, err)
	assert.Empty(t, edited.Items)
}

func TestClozeContent_ToggleBlank_RoundTrip(t *testing.T) {
	content := ClozeContent{Sentence: "The sky is blue"}

	edited, err := content.ToggleBlank(3)
	require.NoError(t, err)
	require.Len(t, edited.Blanks, 1)
	assert.Equal(t, "blue", edited.Blanks[0].Word)
	assert.Equal(t, 3, edited.Blanks[0].Position)
	assert.Equal(t, []string{"blue"}, edited.Blanks[0].Options)

	// Toggling the same position again removes the blank
	edited, err = edited.ToggleBlank(3)
	require.NoError(t, err)
	assert.Empty(t, edited.Blanks)
}

func TestClozeContent_ToggleBlank_StripsPunctuation(t *testing.T) {
	content := ClozeContent{Sentence: "The sky is blue."}

	edited, err := content.ToggleBlank(3)
	require.NoError(t, err)
	assert.Equal(t, "blue", edited.Blanks[0].Word)
}

func TestClozeContent_ToggleBlank_OutOfRange(t *testing.T) {
	content := ClozeContent{Sentence: "Only four words here"}

	_, err := content.ToggleBlank(10)
	assert.Error(t, err)
}

func TestClozeContent_RemoveOption_KeepsLastOption(t *testing.T) {
	content := ClozeContent{
		Sentence: "The sky is blue",
		Blanks: []ClozeBlank{
			{Word: "blue", Position: 3, Options: []string{"blue", "red"}},
		},
	}

	edited, err := content.RemoveOption(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"blue"}, edited.Blanks[0].Options)

	_, err = edited.RemoveOption(0, 0)
	assert.ErrorContains(t, err, "at least one option")
}

func TestClozeContent_SetSentence_DiscardsBlanks(t *testing.T) {
	content := ClozeContent{
		Sentence: "The sky is blue",
		Blanks: []ClozeBlank{
			{Word: "blue", Position: 3, Options: []string{"blue"}},
		},
	}

	edited := content.SetSentence("The grass is green and tall")
	assert.Equal(t, "The grass is green and tall", edited.Sentence)
	assert.Empty(t, edited.Blanks)
}

func TestComprehensionContent_AddSubQuestion_Defaults(t *testing.T) {
	content := ComprehensionContent{Passage: "A passage"}

	edited := content.AddSubQuestion("What happened?")
	require.Len(t, edited.SubQuestions, 1)
	sub := edited.SubQuestions[0]
	assert.Equal(t, "What happened?", sub.QuestionText)
	assert.Equal(t, []string{"Option A", "Option B", "Option C", "Option D"}, sub.Options)
	assert.Equal(t, "Option A", sub.CorrectAnswer)
}

func TestComprehensionContent_RemoveOption_KeepsCorrectAnswer(t *testing.T) {
	content := ComprehensionContent{
		Passage: "A passage",
		SubQuestions: []SubQuestion{
			{QuestionText: "Q", Options: []string{"Option A", "Option B"}, CorrectAnswer: "Option A"},
		},
	}

	// Removing the option the correct answer names leaves the answer
	// dangling; validation rejects it on save.
	edited, err := content.RemoveOption(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Option B"}, edited.SubQuestions[0].Options)
	assert.Equal(t, "Option A", edited.SubQuestions[0].CorrectAnswer)

	_, err = edited.RemoveOption(0, 0)
	assert.ErrorContains(t, err, "at least one option")
}

func TestNewQuestions_SatisfyTypedAccessors(t *testing.T) {
	categorize := NewCategorizeQuestion()
	catContent, err := categorize.CategorizeContent()
	require.NoError(t, err)
	assert.Len(t, catContent.Categories, 2)
	assert.Len(t, catContent.Items, 2)

	cloze := NewClozeQuestion()
	clozeContent, err := cloze.ClozeContent()
	require.NoError(t, err)
	assert.Equal(t, "The sky is blue", clozeContent.Sentence)
	require.Len(t, clozeContent.Blanks, 1)
	assert.Equal(t, "blue", clozeContent.Blanks[0].Word)

	comprehension := NewComprehensionQuestion()
	compContent, err := comprehension.ComprehensionContent()
	require.NoError(t, err)
	require.Len(t, compContent.SubQuestions, 1)
	assert.Contains(t, compContent.SubQuestions[0].Options, compContent.SubQuestions[0].CorrectAnswer)

	// Typed accessors refuse mismatched types
	_, err = categorize.ClozeContent()
	assert.Error(t, err)
}
