package widgets

import (
	"github.com/SAP-F-2025/form-service/internal/collector"
	"github.com/SAP-F-2025/form-service/internal/engine"
	"github.com/SAP-F-2025/form-service/internal/models"
)

// Cloze fills blanks from a word bank: click a blank, then a word. The
// mapping is keyed by blank position while the pool is made of words, so a
// placed word leaves the bank and a cleared blank gives it back.
type Cloze struct {
	base
	question *models.ClozeQuestion
	bank     []string
	engine   *engine.Engine[int, string]
}

func NewCloze(q models.Question, sink AnswerSink) (*Cloze, error) {
	if q.Kind != models.KindCloze || q.Cloze == nil {
		return nil, kindMismatch(q, models.KindCloze)
	}

	w := &Cloze{
		base:     base{questionID: q.ID, sink: sink},
		question: q.Cloze,
		bank:     uniqueWords(q.Cloze.Options),
	}
	blanks := q.Cloze.BlankCount()
	w.engine = engine.New(engine.Rules[int, string]{
		IsSource: func(blank int) bool {
			return blank >= 0 && blank < blanks
		},
		Accepts: func(_ int, word string) bool {
			return w.available(word)
		},
	})
	return w, nil
}

// SelectBlank handles a click on blank i. A filled blank is cleared and its
// word returns to the bank.
func (w *Cloze) SelectBlank(i int) (engine.Outcome, error) {
	if w.frozen {
		return engine.Ignored, nil
	}
	return w.apply(w.engine.SelectSource(i))
}

// SelectWord places word into the pending blank. Words already placed are
// not in the bank and are ignored.
func (w *Cloze) SelectWord(word string) (engine.Outcome, error) {
	if w.frozen {
		return engine.Ignored, nil
	}
	return w.apply(w.engine.SelectTarget(word))
}

func (w *Cloze) apply(outcome engine.Outcome) (engine.Outcome, error) {
	if outcome.Changed() {
		return outcome, w.publish(w.Answer())
	}
	return outcome, nil
}

func (w *Cloze) Pending() (int, bool) {
	return w.engine.Pending()
}

func (w *Cloze) Phase() engine.Phase {
	return w.engine.Phase()
}

// WordBank returns the words not placed in any blank, in option order.
func (w *Cloze) WordBank() []string {
	words := make([]string, 0, len(w.bank))
	for _, word := range w.bank {
		if !w.engine.HasTarget(word) {
			words = append(words, word)
		}
	}
	return words
}

// Filled returns the word in blank i.
func (w *Cloze) Filled(i int) (string, bool) {
	return w.engine.Assigned(i)
}

func (w *Cloze) Blanks() int {
	return w.question.BlankCount()
}

// Segments returns the sentence text around the blanks.
func (w *Cloze) Segments() []string {
	return w.question.Segments()
}

func (w *Cloze) Answer() models.ClozeAnswer {
	return collector.DeriveCloze(w.question, w.engine.Assignments())
}

func (w *Cloze) available(word string) bool {
	for _, candidate := range w.bank {
		if candidate == word {
			return !w.engine.HasTarget(word)
		}
	}
	return false
}

func uniqueWords(options []string) []string {
	seen := make(map[string]bool, len(options))
	words := make([]string, 0, len(options))
	for _, option := range options {
		if seen[option] {
			continue
		}
		seen[option] = true
		words = append(words, option)
	}
	return words
}
