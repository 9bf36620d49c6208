package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

type FormService interface {
	Create(ctx context.Context, req *models.CreateFormRequest, createdBy *string) (*models.Form, error)
	GetByID(ctx context.Context, id string) (*models.Form, error)
}

type formService struct {
	repo      repositories.Repository
	cache     *cache.FormCache
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func NewFormService(
	repo repositories.Repository,
	formCache *cache.FormCache,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) FormService {
	return &formService{
		repo:      repo,
		cache:     formCache,
		publisher: publisher,
		validator: validator,
		logger:    logger,
	}
}

// Create validates the request, assigns ids and stores the form.
func (s *formService) Create(ctx context.Context, req *models.CreateFormRequest, createdBy *string) (*models.Form, error) {
	s.logger.Info("Creating form", "title", req.Title, "question_count", len(req.Questions))

	if err := s.validator.ValidateCreateForm(req); err != nil {
		return nil, err
	}

	form := &models.Form{
		ID:          uuid.NewString(),
		Title:       req.Title,
		HeaderImage: req.HeaderImage,
		Questions:   assignIDs(req.Questions),
		CreatedBy:   createdBy,
	}

	if err := s.repo.Forms().Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.cache.Set(ctx, form)
	s.publish(ctx, events.NewFormCreatedEvent(form))

	s.logger.Info("Form created successfully", "form_id", form.ID)
	return form, nil
}

// GetByID returns the form, serving repeated loads from the cache.
func (s *formService) GetByID(ctx context.Context, id string) (*models.Form, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormID, id)
	}

	if form, ok := s.cache.Get(ctx, id); ok {
		return form, nil
	}

	form, err := s.repo.Forms().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	s.cache.Set(ctx, form)
	return form, nil
}

func (s *formService) publish(ctx context.Context, event *events.FormEvent) {
	if err := s.publisher.PublishFormEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish form event", "event_type", event.Type, "error", err)
	}
}

// assignIDs fills in missing question, item and mcq ids. Ids supplied by the
// author are kept.
func assignIDs(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		switch {
		case q.Categorize != nil:
			c := *q.Categorize
			c.Items = append([]models.CategorizeItem(nil), c.Items...)
			for j := range c.Items {
				if c.Items[j].ID == "" {
					c.Items[j].ID = uuid.NewString()
				}
			}
			q.Categorize = &c
		case q.Comprehension != nil:
			c := *q.Comprehension
			c.MCQs = append([]models.MCQ(nil), c.MCQs...)
			for j := range c.MCQs {
				if c.MCQs[j].ID == "" {
					c.MCQs[j].ID = uuid.NewString()
				}
			}
			q.Comprehension = &c
		}
		out[i] = q
	}
	return out
}
