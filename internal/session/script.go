package session

import (
	"errors"
	"fmt"
)

var ErrUnknownQuestion = errors.New("unknown question")

// Step is one scripted interaction. Which fields apply depends on the kind of
// the question: Item and Category for Categorize, Blank and Word for Cloze,
// MCQ and Option for Comprehension. A step may carry only the first click of
// a pair.
type Step struct {
	QuestionID string `json:"questionId"`
	Item       string `json:"item,omitempty"`
	Category   string `json:"category,omitempty"`
	Blank      *int   `json:"blank,omitempty"`
	Word       string `json:"word,omitempty"`
	MCQ        string `json:"mcq,omitempty"`
	Option     string `json:"option,omitempty"`
}

// Apply replays step against the matching widget.
func (s *Session) Apply(step Step) error {
	switch s.status {
	case Submitted:
		return ErrAlreadySubmitted
	case Ready:
	default:
		return ErrNotReady
	}

	if w, ok := s.Categorize(step.QuestionID); ok {
		if step.Item != "" {
			if _, err := w.SelectItem(step.Item); err != nil {
				return err
			}
		}
		if step.Category != "" {
			if _, err := w.SelectCategory(step.Category); err != nil {
				return err
			}
		}
		return nil
	}

	if w, ok := s.Cloze(step.QuestionID); ok {
		if step.Blank != nil {
			if _, err := w.SelectBlank(*step.Blank); err != nil {
				return err
			}
		}
		if step.Word != "" {
			if _, err := w.SelectWord(step.Word); err != nil {
				return err
			}
		}
		return nil
	}

	if w, ok := s.Comprehension(step.QuestionID); ok {
		_, err := w.Choose(step.MCQ, step.Option)
		return err
	}

	return fmt.Errorf("%w: %s", ErrUnknownQuestion, step.QuestionID)
}

// ApplyAll replays steps in order and stops at the first error.
func (s *Session) ApplyAll(steps []Step) error {
	for i, step := range steps {
		if err := s.Apply(step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}
