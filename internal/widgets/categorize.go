package widgets

import (
	"github.com/SAP-F-2025/form-service/internal/collector"
	"github.com/SAP-F-2025/form-service/internal/engine"
	"github.com/SAP-F-2025/form-service/internal/models"
)

// Categorize assigns items to categories: click an item, then a category.
type Categorize struct {
	base
	question *models.CategorizeQuestion
	engine   *engine.Engine[string, string]
}

func NewCategorize(q models.Question, sink AnswerSink) (*Categorize, error) {
	if q.Kind != models.KindCategorize || q.Categorize == nil {
		return nil, kindMismatch(q, models.KindCategorize)
	}

	cq := q.Categorize
	w := &Categorize{
		base:     base{questionID: q.ID, sink: sink},
		question: cq,
	}
	w.engine = engine.New(engine.Rules[string, string]{
		IsSource: func(id string) bool {
			_, ok := cq.Item(id)
			return ok
		},
		Accepts: func(_ string, category string) bool {
			return cq.HasCategory(category)
		},
	})
	return w, nil
}

// SelectItem handles a click on an item. Clicking a placed item returns it
// to the pool.
func (w *Categorize) SelectItem(itemID string) (engine.Outcome, error) {
	if w.frozen {
		return engine.Ignored, nil
	}
	return w.apply(w.engine.SelectSource(itemID))
}

// SelectCategory places the pending item into category.
func (w *Categorize) SelectCategory(category string) (engine.Outcome, error) {
	if w.frozen {
		return engine.Ignored, nil
	}
	return w.apply(w.engine.SelectTarget(category))
}

func (w *Categorize) apply(outcome engine.Outcome) (engine.Outcome, error) {
	if outcome.Changed() {
		return outcome, w.publish(w.Answer())
	}
	return outcome, nil
}

// Pending returns the selected item id, if any.
func (w *Categorize) Pending() (string, bool) {
	return w.engine.Pending()
}

func (w *Categorize) Phase() engine.Phase {
	return w.engine.Phase()
}

// Pool returns the items not yet placed, in declaration order.
func (w *Categorize) Pool() []models.CategorizeItem {
	pool := make([]models.CategorizeItem, 0, len(w.question.Items))
	for _, item := range w.question.Items {
		if _, placed := w.engine.Assigned(item.ID); !placed {
			pool = append(pool, item)
		}
	}
	return pool
}

// Placed returns the items currently in category, in declaration order.
func (w *Categorize) Placed(category string) []models.CategorizeItem {
	var placed []models.CategorizeItem
	for _, item := range w.question.Items {
		if c, ok := w.engine.Assigned(item.ID); ok && c == category {
			placed = append(placed, item)
		}
	}
	return placed
}

func (w *Categorize) Categories() []string {
	return w.question.Categories
}

func (w *Categorize) Answer() models.CategorizeAnswer {
	return collector.DeriveCategorize(w.question, w.engine.Assignments())
}
