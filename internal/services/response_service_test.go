package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
)

func answerInput(questionID, answer string) models.AnswerInput {
	return models.AnswerInput{QuestionID: questionID, Answer: json.RawMessage(answer)}
}

func TestResponseService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores answers tagged with their kind", func(t *testing.T) {
		s := newTestServices()
		s.repo.forms.On("GetByID", ctx, testFormID).Return(testForm(), nil)
		s.repo.responses.On("Create", ctx, mock.AnythingOfType("*models.Response")).Return(nil)

		resp, err := s.manager.Response().Submit(ctx, testFormID, &models.SubmitResponseRequest{
			Answers: []models.AnswerInput{
				answerInput("q1", `{"i1":"Fruit"}`),
				answerInput("q2", `["cat",""]`),
				answerInput("q3", `{"m1":"yes"}`),
			},
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, testFormID, resp.FormID)
		require.Len(t, resp.Answers, 3)
		assert.Equal(t, models.KindCategorize, resp.Answers[0].Kind)
		assert.Equal(t, models.KindCloze, resp.Answers[1].Kind)
		assert.Equal(t, models.KindComprehension, resp.Answers[2].Kind)
		assert.JSONEq(t, `["cat",""]`, string(resp.Answers[1].Value))

		published := s.publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventResponseSubmitted, published[0].Type)
		s.repo.AssertExpectations(t)
	})

	t.Run("empty answer list is accepted", func(t *testing.T) {
		s := newTestServices()
		s.repo.forms.On("GetByID", ctx, testFormID).Return(testForm(), nil)
		s.repo.responses.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := s.manager.Response().Submit(ctx, testFormID, &models.SubmitResponseRequest{})

		require.NoError(t, err)
		assert.Empty(t, resp.Answers)
	})

	rejected := []struct {
		name      string
		answers   []models.AnswerInput
		wantField string
		wantRule  string
	}{
		{
			name:      "unknown question",
			answers:   []models.AnswerInput{answerInput("q9", `{}`)},
			wantField: "answers[0].questionId",
			wantRule:  "question",
		},
		{
			name:      "question answered twice",
			answers:   []models.AnswerInput{answerInput("q3", `{}`), answerInput("q3", `{"m1":"no"}`)},
			wantField: "answers[1].questionId",
			wantRule:  "unique",
		},
		{
			name:      "cloze answer of wrong length",
			answers:   []models.AnswerInput{answerInput("q2", `["cat"]`)},
			wantField: "answers[0].answer",
			wantRule:  "len",
		},
		{
			name:      "unknown category",
			answers:   []models.AnswerInput{answerInput("q1", `{"i1":"Meat"}`)},
			wantField: "answers[0].answer.i1",
			wantRule:  "oneof",
		},
		{
			name:      "wrong answer shape",
			answers:   []models.AnswerInput{answerInput("q3", `["yes"]`)},
			wantField: "answers[0].answer",
			wantRule:  "shape",
		},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices()
			s.repo.forms.On("GetByID", ctx, testFormID).Return(testForm(), nil)

			_, err := s.manager.Response().Submit(ctx, testFormID, &models.SubmitResponseRequest{Answers: tt.answers})

			require.Error(t, err)
			assert.True(t, IsValidation(err))
			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
			assert.Equal(t, tt.wantRule, errs[0].Rule)
			s.repo.responses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown form", func(t *testing.T) {
		s := newTestServices()
		s.repo.forms.On("GetByID", ctx, testFormID).Return(nil, gorm.ErrRecordNotFound)

		_, err := s.manager.Response().Submit(ctx, testFormID, &models.SubmitResponseRequest{})

		assert.ErrorIs(t, err, ErrFormNotFound)
		assert.True(t, IsNotFound(err))
	})
}

func TestResponseService_ListByForm(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()
	filters := repositories.ResponseFilters{Limit: 10}
	stored := []*models.Response{{ID: "r1", FormID: testFormID}, {ID: "r2", FormID: testFormID}}

	s.repo.forms.On("GetByID", ctx, testFormID).Return(testForm(), nil)
	s.repo.responses.On("ListByForm", ctx, testFormID, filters).Return(stored, int64(2), nil)

	out, err := s.manager.Response().ListByForm(ctx, testFormID, filters)

	require.NoError(t, err)
	assert.Equal(t, testFormID, out.FormID)
	assert.Equal(t, int64(2), out.Total)
	require.Len(t, out.Responses, 2)
	assert.Equal(t, "r2", out.Responses[1].ID)
}

func TestResponseService_GetByID(t *testing.T) {
	ctx := context.Background()
	const id = "0b5f3f86-52a4-4a53-a2b7-6f7f6f0e9d55"

	s := newTestServices()
	s.repo.responses.On("GetByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := s.manager.Response().GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrResponseNotFound)

	_, err = s.manager.Response().GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidResponseID)
}
