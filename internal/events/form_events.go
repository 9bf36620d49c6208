package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/form-service/internal/models"
)

// EventType represents the kinds of form lifecycle events
type EventType string

const (
	EventFormCreated       EventType = "form.created"
	EventResponseSubmitted EventType = "response.submitted"
)

const (
	eventSource  = "form-service"
	eventVersion = "1.0"
)

// FormEvent is the envelope for all published events
type FormEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type FormCreatedEvent struct {
	FormID        string  `json:"form_id"`
	Title         string  `json:"title"`
	QuestionCount int     `json:"question_count"`
	CreatedBy     *string `json:"created_by,omitempty"`
}

type ResponseSubmittedEvent struct {
	FormID      string   `json:"form_id"`
	ResponseID  string   `json:"response_id"`
	AnswerCount int      `json:"answer_count"`
	QuestionIDs []string `json:"question_ids"`
}

func newEvent(eventType EventType, data interface{}) *FormEvent {
	return &FormEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewFormCreatedEvent(form *models.Form) *FormEvent {
	return newEvent(EventFormCreated, FormCreatedEvent{
		FormID:        form.ID,
		Title:         form.Title,
		QuestionCount: len(form.Questions),
		CreatedBy:     form.CreatedBy,
	})
}

func NewResponseSubmittedEvent(response *models.Response) *FormEvent {
	ids := make([]string, 0, len(response.Answers))
	for _, a := range response.Answers {
		ids = append(ids, a.QuestionID)
	}
	return newEvent(EventResponseSubmitted, ResponseSubmittedEvent{
		FormID:      response.FormID,
		ResponseID:  response.ID,
		AnswerCount: len(response.Answers),
		QuestionIDs: ids,
	})
}
