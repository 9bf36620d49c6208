// Package builder holds an author's in-memory form draft until it is saved
// to the store.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/upload"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

type State int

const (
	Draft State = iota
	Saved
)

func (s State) String() string {
	switch s {
	case Draft:
		return "draft"
	case Saved:
		return "saved"
	default:
		return "unknown"
	}
}

var (
	ErrFormSaved         = errors.New("form already saved")
	ErrQuestionIndex     = errors.New("question index out of range")
	ErrUploadUnavailable = errors.New("no image uploader configured")
)

// Store persists a new form and returns it with assigned ids.
type Store interface {
	CreateForm(ctx context.Context, req *models.CreateFormRequest) (*models.Form, error)
}

// Builder is owned by a single author and is not safe for concurrent use.
type Builder struct {
	store     Store
	uploader  upload.Uploader
	validator *validator.Validator
	logger    *slog.Logger

	state       State
	title       string
	headerImage *string
	questions   []models.Question
	saved       *models.Form
}

func New(store Store, uploader upload.Uploader, v *validator.Validator, logger *slog.Logger) *Builder {
	return &Builder{
		store:     store,
		uploader:  uploader,
		validator: v,
		logger:    logger,
		state:     Draft,
	}
}

func (b *Builder) State() State {
	return b.state
}

func (b *Builder) SetTitle(title string) error {
	if b.state == Saved {
		return ErrFormSaved
	}
	b.title = title
	return nil
}

// AddQuestion appends q and returns its position.
func (b *Builder) AddQuestion(q models.Question) (int, error) {
	if b.state == Saved {
		return 0, ErrFormSaved
	}
	b.questions = append(b.questions, q)
	return len(b.questions) - 1, nil
}

func (b *Builder) UpdateQuestion(i int, q models.Question) error {
	if b.state == Saved {
		return ErrFormSaved
	}
	if i < 0 || i >= len(b.questions) {
		return ErrQuestionIndex
	}
	b.questions[i] = q
	return nil
}

func (b *Builder) RemoveQuestion(i int) error {
	if b.state == Saved {
		return ErrFormSaved
	}
	if i < 0 || i >= len(b.questions) {
		return ErrQuestionIndex
	}
	b.questions = append(b.questions[:i], b.questions[i+1:]...)
	return nil
}

// Questions returns a copy of the drafted questions in order.
func (b *Builder) Questions() []models.Question {
	out := make([]models.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

func (b *Builder) HeaderImage() *string {
	return b.headerImage
}

// UploadHeaderImage uploads r and sets it as the header image. On failure
// the draft keeps its previous header image and the error is returned for
// display only.
func (b *Builder) UploadHeaderImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if b.state == Saved {
		return "", ErrFormSaved
	}
	url, err := b.upload(ctx, filename, r)
	if err != nil {
		return "", err
	}
	b.headerImage = &url
	return url, nil
}

// UploadQuestionImage uploads r and attaches it to question i. On failure
// the question is left without a new image.
func (b *Builder) UploadQuestionImage(ctx context.Context, i int, filename string, r io.Reader) (string, error) {
	if b.state == Saved {
		return "", ErrFormSaved
	}
	if i < 0 || i >= len(b.questions) {
		return "", ErrQuestionIndex
	}
	url, err := b.upload(ctx, filename, r)
	if err != nil {
		return "", err
	}
	b.questions[i].Image = &url
	return url, nil
}

func (b *Builder) upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if b.uploader == nil {
		return "", &upload.Error{Err: ErrUploadUnavailable}
	}
	url, err := b.uploader.Upload(ctx, filename, r)
	if err != nil {
		b.logger.Warn("Image upload failed, continuing without image", "filename", filename, "error", err)
		return "", err
	}
	return url, nil
}

// Request returns the draft in the shape sent to the store.
func (b *Builder) Request() *models.CreateFormRequest {
	return &models.CreateFormRequest{
		Title:       b.title,
		HeaderImage: b.headerImage,
		Questions:   b.Questions(),
	}
}

// Validate reports every rule the draft currently breaks.
func (b *Builder) Validate() error {
	return b.validator.ValidateCreateForm(b.Request())
}

// Save validates the draft and persists it. A validation or store failure
// leaves the draft editable so the author can fix it and try again.
func (b *Builder) Save(ctx context.Context) (*models.Form, error) {
	if b.state == Saved {
		return nil, ErrFormSaved
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	form, err := b.store.CreateForm(ctx, b.Request())
	if err != nil {
		b.logger.Error("Failed to save form", "title", b.title, "error", err)
		return nil, fmt.Errorf("failed to save form: %w", err)
	}

	b.saved = form
	b.state = Saved
	b.logger.Info("Form saved", "form_id", form.ID, "question_count", len(form.Questions))
	return form, nil
}

// Form returns the stored form once saved.
func (b *Builder) Form() *models.Form {
	return b.saved
}
