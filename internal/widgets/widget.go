// Package widgets holds the respondent-side interaction state of each
// question kind. Widgets contain no rendering; they are driven by clicks and
// republish their canonical answer after every change.
package widgets

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/form-service/internal/models"
)

var ErrKindMismatch = errors.New("question kind does not match widget")

// AnswerSink receives the canonical answer of a question each time it changes.
type AnswerSink interface {
	Publish(questionID string, value models.AnswerValue) error
}

type base struct {
	questionID string
	sink       AnswerSink
	frozen     bool
}

func (b *base) QuestionID() string {
	return b.questionID
}

// Freeze makes every further interaction a no-op.
func (b *base) Freeze() {
	b.frozen = true
}

func (b *base) Frozen() bool {
	return b.frozen
}

func (b *base) publish(value models.AnswerValue) error {
	if b.sink == nil {
		return nil
	}
	return b.sink.Publish(b.questionID, value)
}

func kindMismatch(q models.Question, want models.QuestionKind) error {
	return fmt.Errorf("%w: question %s is %s, want %s", ErrKindMismatch, q.ID, q.Kind, want)
}
