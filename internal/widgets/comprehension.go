package widgets

import (
	"github.com/SAP-F-2025/form-service/internal/collector"
	"github.com/SAP-F-2025/form-service/internal/models"
)

// Comprehension records one exclusive choice per mcq.
type Comprehension struct {
	base
	question *models.ComprehensionQuestion
	choices  map[string]string
}

func NewComprehension(q models.Question, sink AnswerSink) (*Comprehension, error) {
	if q.Kind != models.KindComprehension || q.Comprehension == nil {
		return nil, kindMismatch(q, models.KindComprehension)
	}
	return &Comprehension{
		base:     base{questionID: q.ID, sink: sink},
		question: q.Comprehension,
		choices:  make(map[string]string),
	}, nil
}

// Choose selects option for mcqID, replacing any earlier choice. It reports
// whether the choice changed.
func (w *Comprehension) Choose(mcqID, option string) (bool, error) {
	if w.frozen {
		return false, nil
	}
	mcq, ok := w.question.MCQ(mcqID)
	if !ok || !mcq.HasOption(option) {
		return false, nil
	}
	if w.choices[mcqID] == option {
		return false, nil
	}

	w.choices[mcqID] = option
	return true, w.publish(w.Answer())
}

func (w *Comprehension) Choice(mcqID string) (string, bool) {
	option, ok := w.choices[mcqID]
	return option, ok
}

func (w *Comprehension) MCQs() []models.MCQ {
	return w.question.MCQs
}

func (w *Comprehension) Answer() models.ComprehensionAnswer {
	return collector.DeriveComprehension(w.question, w.choices)
}
