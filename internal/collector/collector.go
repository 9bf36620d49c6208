// Package collector turns per-question interaction state into the uniform
// answer payload submitted for a form.
package collector

import (
	"fmt"

	"github.com/SAP-F-2025/form-service/internal/models"
)

// Collector holds the latest canonical answer of every question a respondent
// has interacted with. It is owned by a single filling session.
type Collector struct {
	order   []string
	kinds   map[string]models.QuestionKind
	answers map[string]models.AnswerValue
}

func New(form *models.Form) *Collector {
	c := &Collector{
		order:   form.QuestionIDs(),
		kinds:   make(map[string]models.QuestionKind, len(form.Questions)),
		answers: make(map[string]models.AnswerValue),
	}
	for _, q := range form.Questions {
		c.kinds[q.ID] = q.Kind
	}
	return c
}

// Publish records value as the current answer for questionID. Values for
// unknown questions or of the wrong kind are rejected.
func (c *Collector) Publish(questionID string, value models.AnswerValue) error {
	kind, ok := c.kinds[questionID]
	if !ok {
		return fmt.Errorf("unknown question %s", questionID)
	}
	if value.Kind() != kind {
		return fmt.Errorf("question %s expects a %s answer, got %s", questionID, kind, value.Kind())
	}
	c.answers[questionID] = value
	return nil
}

// Answer returns the recorded answer for questionID.
func (c *Collector) Answer(questionID string) (models.AnswerValue, bool) {
	v, ok := c.answers[questionID]
	return v, ok
}

// Len is the number of questions with a recorded answer.
func (c *Collector) Len() int {
	return len(c.answers)
}

// Answers flattens the recorded answers in form declaration order.
// Questions without a recorded interaction are omitted.
func (c *Collector) Answers() ([]models.Answer, error) {
	out := make([]models.Answer, 0, len(c.answers))
	for _, id := range c.order {
		value, ok := c.answers[id]
		if !ok {
			continue
		}
		answer, err := models.NewAnswer(id, value)
		if err != nil {
			return nil, err
		}
		out = append(out, answer)
	}
	return out, nil
}
