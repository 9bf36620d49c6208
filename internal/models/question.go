package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type QuestionKind string

const (
	KindCategorize    QuestionKind = "Categorize"
	KindCloze         QuestionKind = "Cloze"
	KindComprehension QuestionKind = "Comprehension"
)

// BlankMarker denotes one fillable slot in a Cloze sentence.
const BlankMarker = "__BLANK__"

var ErrUnknownQuestionKind = errors.New("unknown question kind")

// Valid reports whether k names one of the supported question kinds.
func (k QuestionKind) Valid() bool {
	switch k {
	case KindCategorize, KindCloze, KindComprehension:
		return true
	}
	return false
}

// Question is a tagged union over the supported kinds. Exactly one of
// Categorize, Cloze or Comprehension is set, matching Kind.
type Question struct {
	ID           string
	Kind         QuestionKind
	QuestionText string
	Image        *string

	Categorize    *CategorizeQuestion
	Cloze         *ClozeQuestion
	Comprehension *ComprehensionQuestion
}

type CategorizeQuestion struct {
	Categories []string
	Items      []CategorizeItem
}

// CategorizeItem is one draggable item. Category is the author's reference
// answer, not a respondent placement.
type CategorizeItem struct {
	ID       string  `json:"id,omitempty"`
	Text     string  `json:"text" validate:"required"`
	Category *string `json:"category,omitempty"`
}

type ClozeQuestion struct {
	Sentence string
	Options  []string
}

type ComprehensionQuestion struct {
	Passage string
	MCQs    []MCQ
}

type MCQ struct {
	ID            string   `json:"id,omitempty"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=1"`
	CorrectAnswer *string  `json:"correctAnswer,omitempty"`
}

func NewCategorizeQuestion(text string, categories []string, items []CategorizeItem) Question {
	return Question{
		Kind:         KindCategorize,
		QuestionText: text,
		Categorize:   &CategorizeQuestion{Categories: categories, Items: items},
	}
}

func NewClozeQuestion(text, sentence string, options []string) Question {
	return Question{
		Kind:         KindCloze,
		QuestionText: text,
		Cloze:        &ClozeQuestion{Sentence: sentence, Options: options},
	}
}

func NewComprehensionQuestion(text, passage string, mcqs []MCQ) Question {
	return Question{
		Kind:          KindComprehension,
		QuestionText:  text,
		Comprehension: &ComprehensionQuestion{Passage: passage, MCQs: mcqs},
	}
}

// HasPayload reports whether the kind-specific fields matching Kind are set.
func (q Question) HasPayload() bool {
	switch q.Kind {
	case KindCategorize:
		return q.Categorize != nil
	case KindCloze:
		return q.Cloze != nil
	case KindComprehension:
		return q.Comprehension != nil
	}
	return false
}

// BlankCount is the number of answerable slots in the sentence.
func (c *ClozeQuestion) BlankCount() int {
	return strings.Count(c.Sentence, BlankMarker)
}

// Segments splits the sentence around its blank markers; blank i sits
// between Segments()[i] and Segments()[i+1].
func (c *ClozeQuestion) Segments() []string {
	return strings.Split(c.Sentence, BlankMarker)
}

// Item returns the item with the given id.
func (c *CategorizeQuestion) Item(id string) (CategorizeItem, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return CategorizeItem{}, false
}

func (c *CategorizeQuestion) HasCategory(name string) bool {
	for _, category := range c.Categories {
		if category == name {
			return true
		}
	}
	return false
}

func (c *ComprehensionQuestion) MCQ(id string) (MCQ, bool) {
	for _, mcq := range c.MCQs {
		if mcq.ID == id {
			return mcq, true
		}
	}
	return MCQ{}, false
}

func (m MCQ) HasOption(option string) bool {
	for _, o := range m.Options {
		if o == option {
			return true
		}
	}
	return false
}

// questionWire is the flat JSON shape used on the wire and in the jsonb
// column. Fields outside the declared kind are dropped on decode.
type questionWire struct {
	ID           string           `json:"id,omitempty"`
	Type         QuestionKind     `json:"type"`
	QuestionText string           `json:"questionText,omitempty"`
	Image        *string          `json:"image,omitempty"`
	Categories   []string         `json:"categories,omitempty"`
	Items        []CategorizeItem `json:"items,omitempty"`
	Sentence     *string          `json:"sentence,omitempty"`
	Options      []string         `json:"options,omitempty"`
	Passage      *string          `json:"passage,omitempty"`
	MCQs         []MCQ            `json:"mcqs,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	w := questionWire{
		ID:           q.ID,
		Type:         q.Kind,
		QuestionText: q.QuestionText,
		Image:        q.Image,
	}

	switch q.Kind {
	case KindCategorize:
		if q.Categorize != nil {
			w.Categories = q.Categorize.Categories
			w.Items = q.Categorize.Items
		}
	case KindCloze:
		if q.Cloze != nil {
			w.Sentence = &q.Cloze.Sentence
			w.Options = q.Cloze.Options
		}
	case KindComprehension:
		if q.Comprehension != nil {
			w.Passage = &q.Comprehension.Passage
			w.MCQs = q.Comprehension.MCQs
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuestionKind, q.Kind)
	}

	return json.Marshal(w)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	decoded := Question{
		ID:           w.ID,
		Kind:         w.Type,
		QuestionText: w.QuestionText,
		Image:        w.Image,
	}

	switch w.Type {
	case KindCategorize:
		decoded.Categorize = &CategorizeQuestion{Categories: w.Categories, Items: w.Items}
	case KindCloze:
		decoded.Cloze = &ClozeQuestion{Sentence: deref(w.Sentence), Options: w.Options}
	case KindComprehension:
		decoded.Comprehension = &ComprehensionQuestion{Passage: deref(w.Passage), MCQs: w.MCQs}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownQuestionKind, w.Type)
	}

	*q = decoded
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
