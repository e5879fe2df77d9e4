package models

import (
	"fmt"
	"regexp"
)

// Edit operations for the three question types. Every operation is a
// pure transform: the receiver is taken by value, slices are copied
// before modification, and the edited content is returned as a new
// value. Callers can keep the old value around for undo/redo.

// ===== CATEGORIZE =====

// AddCategory appends a category to the end of the category list.
func (c CategorizeContent) AddCategory(name string) CategorizeContent {
	c.Categories = append(cloneStrings(c.Categories), name)
	c.Items = cloneItems(c.Items)
	return c
}

// RemoveCategory removes the category at index and cascades: every item
// whose CorrectCategory named the removed category is removed as well,
// rather than left dangling.
func (c CategorizeContent) RemoveCategory(index int) (CategorizeContent, error) {
	if index < 0 || index >= len(c.Categories) {
		return c, fmt.Errorf("category index %d out of range", index)
	}
	removed := c.Categories[index]

	categories := make([]string, 0, len(c.Categories)-1)
	categories = append(categories, c.Categories[:index]...)
	categories = append(categories, c.Categories[index+1:]...)
	c.Categories = categories

	items := make([]CategorizeItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.CorrectCategory != removed {
			items = append(items, item)
		}
	}
	c.Items = items
	return c, nil
}

// RenameCategory renames the category at index and re-points every item
// that referenced the old name, preserving the item-to-category
// relationship under rename.
func (c CategorizeContent) RenameCategory(index int, newName string) (CategorizeContent, error) {
	if index < 0 || index >= len(c.Categories) {
		return c, fmt.Errorf("category index %d out of range", index)
	}
	oldName := c.Categories[index]

	categories := cloneStrings(c.Categories)
	categories[index] = newName
	c.Categories = categories

	items := cloneItems(c.Items)
	for i, item := range items {
		if item.CorrectCategory == oldName {
			items[i].CorrectCategory = newName
		}
	}
	c.Items = items
	return c, nil
}

// AddItem appends an item labeled label, assigned to category.
func (c CategorizeContent) AddItem(label, category string) CategorizeContent {
	c.Categories = cloneStrings(c.Categories)
	c.Items = append(cloneItems(c.Items), CategorizeItem{Label: label, CorrectCategory: category})
	return c
}

// RemoveItem removes the item at index.
func (c CategorizeContent) RemoveItem(index int) (CategorizeContent, error) {
	if index < 0 || index >= len(c.Items) {
		return c, fmt.Errorf("item index %d out of range", index)
	}
	c.Categories = cloneStrings(c.Categories)
	items := make([]CategorizeItem, 0, len(c.Items)-1)
	items = append(items, c.Items[:index]...)
	items = append(items, c.Items[index+1:]...)
	c.Items = items
	return c, nil
}

// ===== CLOZE =====

var nonWordChars = regexp.MustCompile(`[^\w]`)

// ToggleBlank toggles the blank at the given token position. If a blank
// already exists there it is removed; otherwise the word at that
// position is captured with punctuation stripped and becomes both the
// blank's answer and its sole initial option. Toggling the same
// position twice restores the original blank set.
func (c ClozeContent) ToggleBlank(position int) (ClozeContent, error) {
	for i, blank := range c.Blanks {
		if blank.Position == position {
			blanks := make([]ClozeBlank, 0, len(c.Blanks)-1)
			blanks = append(blanks, c.Blanks[:i]...)
			blanks = append(blanks, c.Blanks[i+1:]...)
			c.Blanks = blanks
			return c, nil
		}
	}

	tokens := c.Tokens()
	if position < 0 || position >= len(tokens) {
		return c, fmt.Errorf("position %d out of range for sentence with %d words", position, len(tokens))
	}

	word := nonWordChars.ReplaceAllString(tokens[position], "")
	if word == "" {
		word = tokens[position]
	}
	c.Blanks = append(cloneBlanks(c.Blanks), ClozeBlank{
		Word:     word,
		Position: position,
		Options:  []string{word},
	})
	return c, nil
}

// AddOption appends an option to the blank at blankIndex.
func (c ClozeContent) AddOption(blankIndex int, option string) (ClozeContent, error) {
	if blankIndex < 0 || blankIndex >= len(c.Blanks) {
		return c, fmt.Errorf("blank index %d out of range", blankIndex)
	}
	blanks := cloneBlanks(c.Blanks)
	blanks[blankIndex].Options = append(blanks[blankIndex].Options, option)
	c.Blanks = blanks
	return c, nil
}

// UpdateOption replaces the option at optionIndex of the given blank.
func (c ClozeContent) UpdateOption(blankIndex, optionIndex int, option string) (ClozeContent, error) {
	if blankIndex < 0 || blankIndex >= len(c.Blanks) {
		return c, fmt.Errorf("blank index %d out of range", blankIndex)
	}
	if optionIndex < 0 || optionIndex >= len(c.Blanks[blankIndex].Options) {
		return c, fmt.Errorf("option index %d out of range", optionIndex)
	}
	blanks := cloneBlanks(c.Blanks)
	blanks[blankIndex].Options[optionIndex] = option
	c.Blanks = blanks
	return c, nil
}

// RemoveOption removes the option at optionIndex of the given blank.
// A blank must always retain at least one option.
func (c ClozeContent) RemoveOption(blankIndex, optionIndex int) (ClozeContent, error) {
	if blankIndex < 0 || blankIndex >= len(c.Blanks) {
		return c, fmt.Errorf("blank index %d out of range", blankIndex)
	}
	if optionIndex < 0 || optionIndex >= len(c.Blanks[blankIndex].Options) {
		return c, fmt.Errorf("option index %d out of range", optionIndex)
	}
	if len(c.Blanks[blankIndex].Options) == 1 {
		return c, fmt.Errorf("blank must retain at least one option")
	}
	blanks := cloneBlanks(c.Blanks)
	options := blanks[blankIndex].Options
	blanks[blankIndex].Options = append(options[:optionIndex], options[optionIndex+1:]...)
	c.Blanks = blanks
	return c, nil
}

// SetSentence replaces the sentence and discards all blanks; their
// positions index into the old token sequence and would otherwise bind
// to the wrong words.
func (c ClozeContent) SetSentence(sentence string) ClozeContent {
	c.Sentence = sentence
	c.Blanks = []ClozeBlank{}
	return c
}

// ===== COMPREHENSION =====

// AddSubQuestion appends a starter sub-question with four placeholder
// options and the first marked correct.
func (c ComprehensionContent) AddSubQuestion(questionText string) ComprehensionContent {
	c.SubQuestions = append(cloneSubQuestions(c.SubQuestions), SubQuestion{
		QuestionText:  questionText,
		Options:       []string{"Option A", "Option B", "Option C", "Option D"},
		CorrectAnswer: "Option A",
	})
	return c
}

// RemoveSubQuestion removes the sub-question at index.
func (c ComprehensionContent) RemoveSubQuestion(index int) (ComprehensionContent, error) {
	if index < 0 || index >= len(c.SubQuestions) {
		return c, fmt.Errorf("sub-question index %d out of range", index)
	}
	subs := make([]SubQuestion, 0, len(c.SubQuestions)-1)
	subs = append(subs, c.SubQuestions[:index]...)
	subs = append(subs, c.SubQuestions[index+1:]...)
	c.SubQuestions = subs
	return c, nil
}

// AddOption appends an option to the sub-question at index.
func (c ComprehensionContent) AddOption(index int, option string) (ComprehensionContent, error) {
	if index < 0 || index >= len(c.SubQuestions) {
		return c, fmt.Errorf("sub-question index %d out of range", index)
	}
	subs := cloneSubQuestions(c.SubQuestions)
	subs[index].Options = append(subs[index].Options, option)
	c.SubQuestions = subs
	return c, nil
}

// RemoveOption removes the option at optionIndex of the sub-question at
// index. A sub-question must always retain at least one option. The
// correct answer is not re-pointed automatically when the option it
// names is removed; validation catches the mismatch on save.
func (c ComprehensionContent) RemoveOption(index, optionIndex int) (ComprehensionContent, error) {
	if index < 0 || index >= len(c.SubQuestions) {
		return c, fmt.Errorf("sub-question index %d out of range", index)
	}
	if optionIndex < 0 || optionIndex >= len(c.SubQuestions[index].Options) {
		return c, fmt.Errorf("option index %d out of range", optionIndex)
	}
	if len(c.SubQuestions[index].Options) == 1 {
		return c, fmt.Errorf("sub-question must retain at least one option")
	}
	subs := cloneSubQuestions(c.SubQuestions)
	options := subs[index].Options
	subs[index].Options = append(options[:optionIndex], options[optionIndex+1:]...)
	c.SubQuestions = subs
	return c, nil
}

// SetCorrectAnswer points the sub-question's correct answer at one of
// its options.
func (c ComprehensionContent) SetCorrectAnswer(index int, answer string) (ComprehensionContent, error) {
	if index < 0 || index >= len(c.SubQuestions) {
		return c, fmt.Errorf("sub-question index %d out of range", index)
	}
	subs := cloneSubQuestions(c.SubQuestions)
	subs[index].CorrectAnswer = answer
	c.SubQuestions = subs
	return c, nil
}

// ===== COPY HELPERS =====

func cloneStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

func cloneItems(src []CategorizeItem) []CategorizeItem {
	dst := make([]CategorizeItem, len(src))
	copy(dst, src)
	return dst
}

func cloneBlanks(src []ClozeBlank) []ClozeBlank {
	dst := make([]ClozeBlank, len(src))
	for i, blank := range src {
		dst[i] = blank
		dst[i].Options = cloneStrings(blank.Options)
	}
	return dst
}

func cloneSubQuestions(src []SubQuestion) []SubQuestion {
	dst := make([]SubQuestion, len(src))
	for i, sub := range src {
		dst[i] = sub
		dst[i].Options = cloneStrings(sub.Options)
	}
	return dst
}
