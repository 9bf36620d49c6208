package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

// MockFormRepository is a mock implementation of FormRepository
type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) GetByID(ctx context.Context, id string) (*models.Form, error) {
	args := m.Called(ctx, id)
	if form := args.Get(0); form != nil {
		return form.(*models.Form), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByID(ctx context.Context, id string) (*models.Response, error) {
	args := m.Called(ctx, id)
	if response := args.Get(0); response != nil {
		return response.(*models.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResponseRepository) ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	args := m.Called(ctx, formID, filters)
	return args.Get(0).([]*models.Response), args.Get(1).(int64), args.Error(2)
}

// MockRepository groups the mock repositories
type MockRepository struct {
	forms     *MockFormRepository
	responses *MockResponseRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		forms:     &MockFormRepository{},
		responses: &MockResponseRepository{},
	}
}

func (m *MockRepository) Forms() repositories.FormRepository         { return m.forms }
func (m *MockRepository) Responses() repositories.ResponseRepository { return m.responses }
func (m *MockRepository) Migrate(context.Context) error              { return nil }

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.forms.AssertExpectations(t)
	m.responses.AssertExpectations(t)
}

type testServices struct {
	repo      *MockRepository
	publisher *events.MockEventPublisher
	manager   *ServiceManager
}

func newTestServices() *testServices {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	formCache := cache.NewFormCache(cache.NewNoopCache(), 0, logger)

	return &testServices{
		repo:      repo,
		publisher: publisher,
		manager:   NewServiceManager(repo, formCache, publisher, validator.New(), logger),
	}
}

func strPtr(s string) *string { return &s }

const testFormID = "6f1c2b1e-8d4a-4b7e-9a43-2f5d7c9e0a11"

func testForm() *models.Form {
	return &models.Form{
		ID:    testFormID,
		Title: "Quiz",
		Questions: []models.Question{
			{
				ID:           "q1",
				Kind:         models.KindCategorize,
				QuestionText: "Sort",
				Categorize: &models.CategorizeQuestion{
					Categories: []string{"Fruit", "Veg"},
					Items: []models.CategorizeItem{
						{ID: "i1", Text: "Apple", Category: strPtr("Fruit")},
						{ID: "i2", Text: "Carrot", Category: strPtr("Veg")},
					},
				},
			},
			{
				ID:           "q2",
				Kind:         models.KindCloze,
				QuestionText: "Fill",
				Cloze: &models.ClozeQuestion{
					Sentence: "The __BLANK__ sat on the __BLANK__.",
					Options:  []string{"cat", "mat"},
				},
			},
			{
				ID:           "q3",
				Kind:         models.KindComprehension,
				QuestionText: "Read",
				Comprehension: &models.ComprehensionQuestion{
					Passage: "Cats sit.",
					MCQs: []models.MCQ{
						{ID: "m1", Question: "Do cats sit?", Options: []string{"yes", "no"}},
					},
				},
			},
		},
	}
}
