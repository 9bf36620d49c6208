// Package session drives one respondent filling in one form: load the form,
// build a widget per question, collect answers and submit them once.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/form-service/internal/client"
	"github.com/SAP-F-2025/form-service/internal/collector"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/widgets"
)

type Status int

const (
	Loading Status = iota
	Ready
	Submitted
	LoadFailed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Submitted:
		return "submitted"
	case LoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

var (
	ErrNotReady         = errors.New("form is not ready")
	ErrAlreadySubmitted = errors.New("response already submitted")
)

// Store is the subset of the form store a session needs.
type Store interface {
	GetForm(ctx context.Context, id string) (*models.Form, error)
	SubmitResponse(ctx context.Context, formID string, answers []models.Answer) (*models.Response, error)
}

// Widget is the state common to every question widget.
type Widget interface {
	QuestionID() string
	Freeze()
	Frozen() bool
}

// Session is owned by a single respondent and is not safe for concurrent use.
type Session struct {
	formID string
	store  Store
	logger *slog.Logger

	status    Status
	loadErr   error
	form      *models.Form
	collector *collector.Collector
	widgets   []Widget
	byID      map[string]Widget
	response  *models.Response
}

func New(formID string, store Store, logger *slog.Logger) *Session {
	return &Session{
		formID: formID,
		store:  store,
		logger: logger.With("form_id", formID),
		status: Loading,
	}
}

// Load fetches the form and sets up one widget per question. Any failure
// leaves the session in LoadFailed with no widgets. LoadFailed is final:
// later calls return the original error and retrying takes a new Session.
func (s *Session) Load(ctx context.Context) error {
	switch s.status {
	case Loading:
	case LoadFailed:
		return s.loadErr
	default:
		return nil
	}

	form, err := s.store.GetForm(ctx, s.formID)
	if err != nil {
		s.status = LoadFailed
		s.loadErr = err
		if errors.Is(err, client.ErrFormNotFound) {
			s.logger.Warn("Form not found")
		} else {
			s.logger.Error("Failed to load form", "error", err)
		}
		return err
	}

	c := collector.New(form)
	built := make([]Widget, 0, len(form.Questions))
	byID := make(map[string]Widget, len(form.Questions))
	for _, q := range form.Questions {
		w, err := newWidget(q, c)
		if err != nil {
			s.status = LoadFailed
			s.loadErr = err
			s.logger.Error("Failed to build widget", "question_id", q.ID, "error", err)
			return err
		}
		built = append(built, w)
		byID[q.ID] = w
	}

	s.form = form
	s.collector = c
	s.widgets = built
	s.byID = byID
	s.loadErr = nil
	s.status = Ready

	s.logger.Info("Form loaded", "question_count", len(form.Questions))
	return nil
}

func newWidget(q models.Question, sink widgets.AnswerSink) (Widget, error) {
	switch q.Kind {
	case models.KindCategorize:
		return widgets.NewCategorize(q, sink)
	case models.KindCloze:
		return widgets.NewCloze(q, sink)
	case models.KindComprehension:
		return widgets.NewComprehension(q, sink)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownQuestionKind, q.Kind)
	}
}

// Submit sends the collected answers. On failure the session stays Ready and
// keeps every answer so the respondent can retry. After success all widgets
// are frozen.
func (s *Session) Submit(ctx context.Context) (*models.Response, error) {
	switch s.status {
	case Submitted:
		return nil, ErrAlreadySubmitted
	case Ready:
	default:
		return nil, ErrNotReady
	}

	answers, err := s.collector.Answers()
	if err != nil {
		return nil, fmt.Errorf("failed to collect answers: %w", err)
	}

	resp, err := s.store.SubmitResponse(ctx, s.formID, answers)
	if err != nil {
		s.logger.Error("Failed to submit response", "error", err)
		return nil, err
	}

	for _, w := range s.widgets {
		w.Freeze()
	}
	s.response = resp
	s.status = Submitted

	s.logger.Info("Response submitted", "response_id", resp.ID, "answer_count", len(answers))
	return resp, nil
}

func (s *Session) Status() Status {
	return s.status
}

// Err is the error that moved the session to LoadFailed.
func (s *Session) Err() error {
	return s.loadErr
}

func (s *Session) Form() *models.Form {
	return s.form
}

func (s *Session) Response() *models.Response {
	return s.response
}

// Widgets returns the widgets in question order.
func (s *Session) Widgets() []Widget {
	return s.widgets
}

// Answers returns the answers that would be submitted now.
func (s *Session) Answers() ([]models.Answer, error) {
	if s.collector == nil {
		return nil, ErrNotReady
	}
	return s.collector.Answers()
}

func (s *Session) Categorize(questionID string) (*widgets.Categorize, bool) {
	w, ok := s.byID[questionID].(*widgets.Categorize)
	return w, ok
}

func (s *Session) Cloze(questionID string) (*widgets.Cloze, bool) {
	w, ok := s.byID[questionID].(*widgets.Cloze)
	return w, ok
}

func (s *Session) Comprehension(questionID string) (*widgets.Comprehension, bool) {
	w, ok := s.byID[questionID].(*widgets.Comprehension)
	return w, ok
}
