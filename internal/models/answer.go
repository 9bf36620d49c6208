package models

import (
	"encoding/json"
	"fmt"
)

// AnswerValue is a canonical, kind-specific answer to one question.
type AnswerValue interface {
	Kind() QuestionKind
}

// CategorizeAnswer maps item id to the category it was placed in. Unplaced
// items are absent.
type CategorizeAnswer map[string]string

// ClozeAnswer holds one word per blank, left to right; unfilled blanks are "".
type ClozeAnswer []string

// ComprehensionAnswer maps mcq id to the chosen option. Unanswered mcqs are absent.
type ComprehensionAnswer map[string]string

func (CategorizeAnswer) Kind() QuestionKind    { return KindCategorize }
func (ClozeAnswer) Kind() QuestionKind         { return KindCloze }
func (ComprehensionAnswer) Kind() QuestionKind { return KindComprehension }

// Answer is one stored {questionId, answer} entry. Kind is recorded at write
// time so the value can be decoded without the form at hand.
type Answer struct {
	QuestionID string          `json:"questionId"`
	Kind       QuestionKind    `json:"kind,omitempty"`
	Value      json.RawMessage `json:"answer"`
}

func NewAnswer(questionID string, value AnswerValue) (Answer, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return Answer{}, fmt.Errorf("failed to encode answer for question %s: %w", questionID, err)
	}
	return Answer{
		QuestionID: questionID,
		Kind:       value.Kind(),
		Value:      raw,
	}, nil
}

// Decode returns the typed value according to the recorded kind.
func (a Answer) Decode() (AnswerValue, error) {
	switch a.Kind {
	case KindCategorize:
		var v CategorizeAnswer
		if err := json.Unmarshal(a.Value, &v); err != nil {
			return nil, fmt.Errorf("invalid categorize answer: %w", err)
		}
		return v, nil
	case KindCloze:
		var v ClozeAnswer
		if err := json.Unmarshal(a.Value, &v); err != nil {
			return nil, fmt.Errorf("invalid cloze answer: %w", err)
		}
		return v, nil
	case KindComprehension:
		var v ComprehensionAnswer
		if err := json.Unmarshal(a.Value, &v); err != nil {
			return nil, fmt.Errorf("invalid comprehension answer: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuestionKind, a.Kind)
	}
}
