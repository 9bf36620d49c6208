package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

func TestFormService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns ids and stores the form", func(t *testing.T) {
		s := newTestServices()
		req := &models.CreateFormRequest{
			Title: "Quiz",
			Questions: []models.Question{
				models.NewCategorizeQuestion("Sort", []string{"Fruit", "Veg"}, []models.CategorizeItem{
					{Text: "Apple", Category: strPtr("Fruit")},
				}),
				models.NewClozeQuestion("Fill", "A __BLANK__.", []string{"cat"}),
				models.NewComprehensionQuestion("Read", "Cats sit.", []models.MCQ{
					{Question: "Sit?", Options: []string{"yes", "no"}},
				}),
			},
		}
		s.repo.forms.On("Create", ctx, mock.AnythingOfType("*models.Form")).Return(nil)

		form, err := s.manager.Form().Create(ctx, req, strPtr("alice"))

		require.NoError(t, err)
		assert.NotEmpty(t, form.ID)
		assert.Equal(t, "alice", *form.CreatedBy)
		require.Len(t, form.Questions, 3)
		for _, q := range form.Questions {
			assert.NotEmpty(t, q.ID)
		}
		assert.NotEmpty(t, form.Questions[0].Categorize.Items[0].ID)
		assert.NotEmpty(t, form.Questions[2].Comprehension.MCQs[0].ID)
		assert.Empty(t, req.Questions[0].ID, "request is not modified")
		assert.Empty(t, req.Questions[0].Categorize.Items[0].ID, "request items are not modified")

		published := s.publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventFormCreated, published[0].Type)
		s.repo.AssertExpectations(t)
	})

	t.Run("keeps author supplied ids", func(t *testing.T) {
		s := newTestServices()
		req := &models.CreateFormRequest{
			Title:     "Quiz",
			Questions: []models.Question{models.NewClozeQuestion("Fill", "A __BLANK__.", []string{"cat"})},
		}
		req.Questions[0].ID = "cloze-1"
		s.repo.forms.On("Create", ctx, mock.AnythingOfType("*models.Form")).Return(nil)

		form, err := s.manager.Form().Create(ctx, req, nil)

		require.NoError(t, err)
		assert.Equal(t, "cloze-1", form.Questions[0].ID)
	})

	t.Run("invalid request is not stored", func(t *testing.T) {
		s := newTestServices()

		_, err := s.manager.Form().Create(ctx, &models.CreateFormRequest{}, nil)

		require.Error(t, err)
		assert.True(t, IsValidation(err))
		s.repo.forms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, s.publisher.GetPublishedEvents())
	})

	t.Run("store failure is returned", func(t *testing.T) {
		s := newTestServices()
		s.repo.forms.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

		_, err := s.manager.Form().Create(ctx, &models.CreateFormRequest{Title: "Quiz"}, nil)

		require.Error(t, err)
		assert.False(t, IsValidation(err))
		assert.Contains(t, err.Error(), "connection refused")
		assert.Empty(t, s.publisher.GetPublishedEvents())
	})
}

func TestFormService_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		setup   func(repo *MockRepository)
		wantErr error
	}{
		{
			name: "found",
			id:   testFormID,
			setup: func(repo *MockRepository) {
				repo.forms.On("GetByID", ctx, testFormID).Return(testForm(), nil)
			},
		},
		{
			name:    "malformed id",
			id:      "not-a-uuid",
			setup:   func(*MockRepository) {},
			wantErr: ErrInvalidFormID,
		},
		{
			name: "not found",
			id:   testFormID,
			setup: func(repo *MockRepository) {
				repo.forms.On("GetByID", ctx, testFormID).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrFormNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices()
			tt.setup(s.repo)

			form, err := s.manager.Form().GetByID(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, form)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testFormID, form.ID)
			assert.Len(t, form.Questions, 3)
		})
	}
}

// memoryCache is a CacheService backed by a map of JSON documents.
type memoryCache struct {
	entries map[string][]byte
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) DeletePattern(context.Context, string) error {
	c.entries = map[string][]byte{}
	return nil
}

func TestFormService_GetByIDServesFromCache(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMockRepository()
	formCache := cache.NewFormCache(&memoryCache{entries: map[string][]byte{}}, time.Minute, logger)
	svc := NewFormService(repo, formCache, events.NewMockEventPublisher(logger), validator.New(), logger)

	repo.forms.On("GetByID", ctx, testFormID).Return(testForm(), nil).Once()

	first, err := svc.GetByID(ctx, testFormID)
	require.NoError(t, err)
	second, err := svc.GetByID(ctx, testFormID)
	require.NoError(t, err)

	assert.Equal(t, first.QuestionIDs(), second.QuestionIDs())
	assert.Equal(t, first.Title, second.Title)
	repo.forms.AssertNumberOfCalls(t, "GetByID", 1)
}
