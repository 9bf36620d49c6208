package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

type ResponseService interface {
	Submit(ctx context.Context, formID string, req *models.SubmitResponseRequest) (*models.Response, error)
	GetByID(ctx context.Context, id string) (*models.Response, error)
	ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) (*models.FormResponses, error)
}

type responseService struct {
	repo      repositories.Repository
	forms     FormService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func NewResponseService(
	repo repositories.Repository,
	forms FormService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) ResponseService {
	return &responseService{
		repo:      repo,
		forms:     forms,
		publisher: publisher,
		validator: validator,
		logger:    logger,
	}
}

// Submit checks every answer against the question it names and stores the
// response. Each stored answer is tagged with its question kind.
func (s *responseService) Submit(ctx context.Context, formID string, req *models.SubmitResponseRequest) (*models.Response, error) {
	s.logger.Info("Submitting response", "form_id", formID, "answer_count", len(req.Answers))

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	answers, err := s.canonicalAnswers(form, req.Answers)
	if err != nil {
		return nil, err
	}

	response := &models.Response{
		ID:      uuid.NewString(),
		FormID:  form.ID,
		Answers: answers,
	}
	if err := s.repo.Responses().Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	if err := s.publisher.PublishFormEvent(ctx, events.NewResponseSubmittedEvent(response)); err != nil {
		s.logger.Warn("Failed to publish response event", "response_id", response.ID, "error", err)
	}

	s.logger.Info("Response submitted successfully", "form_id", form.ID, "response_id", response.ID)
	return response, nil
}

func (s *responseService) canonicalAnswers(form *models.Form, inputs []models.AnswerInput) ([]models.Answer, error) {
	var errs ValidationErrors
	answers := make([]models.Answer, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))

	for i, in := range inputs {
		field := fmt.Sprintf("answers[%d]", i)

		q, ok := form.Question(in.QuestionID)
		if !ok {
			errs.Add(field+".questionId", "question", "is not a question of this form", in.QuestionID)
			continue
		}
		if seen[in.QuestionID] {
			errs.Add(field+".questionId", "unique", "must not be answered twice", in.QuestionID)
			continue
		}
		seen[in.QuestionID] = true

		value, answerErrs := s.validator.Answer().Validate(field+".answer", q, in.Answer)
		if len(answerErrs) > 0 {
			errs = append(errs, answerErrs...)
			continue
		}

		answer, err := models.NewAnswer(q.ID, value)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return answers, nil
}

func (s *responseService) GetByID(ctx context.Context, id string) (*models.Response, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponseID, id)
	}

	response, err := s.repo.Responses().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return response, nil
}

// ListByForm returns the stored responses of an existing form.
func (s *responseService) ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) (*models.FormResponses, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	responses, total, err := s.repo.Responses().ListByForm(ctx, form.ID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	out := &models.FormResponses{
		FormID:    form.ID,
		Total:     total,
		Responses: make([]models.Response, 0, len(responses)),
	}
	for _, r := range responses {
		out.Responses = append(out.Responses, *r)
	}
	return out, nil
}
