package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/form-service/internal/engine"
	"github.com/SAP-F-2025/form-service/internal/models"
)

type recordingSink struct {
	published []models.AnswerValue
}

func (s *recordingSink) Publish(_ string, value models.AnswerValue) error {
	s.published = append(s.published, value)
	return nil
}

func (s *recordingSink) last() models.AnswerValue {
	if len(s.published) == 0 {
		return nil
	}
	return s.published[len(s.published)-1]
}

func clozeQuestion(options ...string) models.Question {
	q := models.NewClozeQuestion("", "The __BLANK__ sat on the __BLANK__.", options)
	q.ID = "q1"
	return q
}

func categorizeQuestion() models.Question {
	q := models.NewCategorizeQuestion("", []string{"Fruit", "Veg"}, []models.CategorizeItem{
		{ID: "1", Text: "Apple"},
		{ID: "2", Text: "Carrot"},
	})
	q.ID = "q2"
	return q
}

func comprehensionQuestion() models.Question {
	q := models.NewComprehensionQuestion("", "passage", []models.MCQ{
		{ID: "m1", Question: "A?", Options: []string{"yes", "no"}},
		{ID: "m2", Question: "B?", Options: []string{"up", "down"}},
	})
	q.ID = "q3"
	return q
}

func TestCloze_FillAndClear(t *testing.T) {
	sink := &recordingSink{}
	w, err := NewCloze(clozeQuestion("cat", "mat"), sink)
	require.NoError(t, err)

	_, err = w.SelectBlank(0)
	require.NoError(t, err)
	outcome, err := w.SelectWord("cat")
	require.NoError(t, err)
	assert.Equal(t, engine.Assigned, outcome)
	assert.Equal(t, models.ClozeAnswer{"cat", ""}, sink.last())
	assert.Equal(t, []string{"mat"}, w.WordBank())

	w.SelectBlank(1)
	w.SelectWord("mat")
	assert.Equal(t, models.ClozeAnswer{"cat", "mat"}, sink.last())
	assert.Empty(t, w.WordBank())

	outcome, err = w.SelectBlank(0)
	require.NoError(t, err)
	assert.Equal(t, engine.Unassigned, outcome)
	assert.Equal(t, models.ClozeAnswer{"", "mat"}, sink.last())
	assert.Equal(t, []string{"cat"}, w.WordBank())
	assert.Equal(t, engine.Idle, w.Phase())
}

func TestCloze_Interactions(t *testing.T) {
	tests := []struct {
		name        string
		options     []string
		run         func(w *Cloze) engine.Outcome
		wantOutcome engine.Outcome
		wantAnswer  models.ClozeAnswer
		wantBank    []string
	}{
		{
			name:    "word without pending blank is ignored",
			options: []string{"cat", "mat"},
			run: func(w *Cloze) engine.Outcome {
				o, _ := w.SelectWord("cat")
				return o
			},
			wantOutcome: engine.Ignored,
			wantAnswer:  models.ClozeAnswer{"", ""},
			wantBank:    []string{"cat", "mat"},
		},
		{
			name:    "placed word cannot be placed twice",
			options: []string{"cat", "mat"},
			run: func(w *Cloze) engine.Outcome {
				w.SelectBlank(0)
				w.SelectWord("cat")
				w.SelectBlank(1)
				o, _ := w.SelectWord("cat")
				return o
			},
			wantOutcome: engine.Ignored,
			wantAnswer:  models.ClozeAnswer{"cat", ""},
			wantBank:    []string{"mat"},
		},
		{
			name:    "word outside options is ignored",
			options: []string{"cat", "mat"},
			run: func(w *Cloze) engine.Outcome {
				w.SelectBlank(0)
				o, _ := w.SelectWord("dog")
				return o
			},
			wantOutcome: engine.Ignored,
			wantAnswer:  models.ClozeAnswer{"", ""},
			wantBank:    []string{"cat", "mat"},
		},
		{
			name:    "blank past the sentence is ignored",
			options: []string{"cat", "mat"},
			run: func(w *Cloze) engine.Outcome {
				o, _ := w.SelectBlank(2)
				return o
			},
			wantOutcome: engine.Ignored,
			wantAnswer:  models.ClozeAnswer{"", ""},
			wantBank:    []string{"cat", "mat"},
		},
		{
			name:    "duplicate options collapse in the bank",
			options: []string{"cat", "cat", "mat"},
			run: func(w *Cloze) engine.Outcome {
				w.SelectBlank(0)
				o, _ := w.SelectWord("cat")
				return o
			},
			wantOutcome: engine.Assigned,
			wantAnswer:  models.ClozeAnswer{"cat", ""},
			wantBank:    []string{"mat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewCloze(clozeQuestion(tt.options...), nil)
			require.NoError(t, err)

			outcome := tt.run(w)

			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantAnswer, w.Answer())
			assert.Equal(t, tt.wantBank, w.WordBank())
		})
	}
}

func TestCloze_SegmentsAndBlanks(t *testing.T) {
	w, err := NewCloze(clozeQuestion("cat", "mat"), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, w.Blanks())
	assert.Equal(t, []string{"The ", " sat on the ", "."}, w.Segments())
}

func TestCategorize_AssignAll(t *testing.T) {
	sink := &recordingSink{}
	w, err := NewCategorize(categorizeQuestion(), sink)
	require.NoError(t, err)

	w.SelectItem("1")
	w.SelectCategory("Fruit")
	w.SelectItem("2")
	outcome, err := w.SelectCategory("Veg")
	require.NoError(t, err)

	assert.Equal(t, engine.Assigned, outcome)
	assert.Equal(t, models.CategorizeAnswer{"1": "Fruit", "2": "Veg"}, sink.last())
	assert.Empty(t, w.Pool())
	require.Len(t, w.Placed("Fruit"), 1)
	assert.Equal(t, "Apple", w.Placed("Fruit")[0].Text)
}

func TestCategorize_ReturnToPool(t *testing.T) {
	w, err := NewCategorize(categorizeQuestion(), nil)
	require.NoError(t, err)

	w.SelectItem("1")
	w.SelectCategory("Fruit")
	outcome, _ := w.SelectItem("1")

	assert.Equal(t, engine.Unassigned, outcome)
	assert.Len(t, w.Pool(), 2)
	assert.Empty(t, w.Answer())
}

func TestCategorize_UnknownCategoryKeepsSelection(t *testing.T) {
	sink := &recordingSink{}
	w, err := NewCategorize(categorizeQuestion(), sink)
	require.NoError(t, err)

	w.SelectItem("2")
	outcome, _ := w.SelectCategory("Meat")

	assert.Equal(t, engine.Ignored, outcome)
	pending, ok := w.Pending()
	assert.True(t, ok)
	assert.Equal(t, "2", pending)
	assert.Empty(t, sink.published)
}

func TestCategorize_PoolAndPlacementPartitionItems(t *testing.T) {
	w, err := NewCategorize(categorizeQuestion(), nil)
	require.NoError(t, err)

	clicks := [][2]string{{"1", "Fruit"}, {"2", "Veg"}, {"1", ""}, {"2", ""}, {"2", "Fruit"}}
	for _, click := range clicks {
		w.SelectItem(click[0])
		if click[1] != "" {
			w.SelectCategory(click[1])
		}

		total := len(w.Pool())
		for _, c := range w.Categories() {
			total += len(w.Placed(c))
		}
		assert.Equal(t, 2, total)
	}
}

func TestComprehension_Choose(t *testing.T) {
	sink := &recordingSink{}
	w, err := NewComprehension(comprehensionQuestion(), sink)
	require.NoError(t, err)

	changed, err := w.Choose("m1", "yes")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.ComprehensionAnswer{"m1": "yes"}, sink.last())

	changed, _ = w.Choose("m1", "no")
	assert.True(t, changed)
	assert.Equal(t, models.ComprehensionAnswer{"m1": "no"}, sink.last())

	changed, _ = w.Choose("m1", "no")
	assert.False(t, changed)

	changed, _ = w.Choose("m1", "maybe")
	assert.False(t, changed)
	changed, _ = w.Choose("m9", "yes")
	assert.False(t, changed)

	assert.Len(t, sink.published, 2)
	choice, ok := w.Choice("m1")
	assert.True(t, ok)
	assert.Equal(t, "no", choice)
}

func TestComprehension_NoChoiceNoPublish(t *testing.T) {
	sink := &recordingSink{}
	_, err := NewComprehension(comprehensionQuestion(), sink)
	require.NoError(t, err)

	assert.Empty(t, sink.published)
}

func TestFrozenWidgetsIgnoreInput(t *testing.T) {
	sink := &recordingSink{}
	cloze, _ := NewCloze(clozeQuestion("cat", "mat"), sink)
	categorize, _ := NewCategorize(categorizeQuestion(), sink)
	comprehension, _ := NewComprehension(comprehensionQuestion(), sink)

	cloze.Freeze()
	categorize.Freeze()
	comprehension.Freeze()

	cloze.SelectBlank(0)
	o, _ := cloze.SelectWord("cat")
	assert.Equal(t, engine.Ignored, o)

	categorize.SelectItem("1")
	o, _ = categorize.SelectCategory("Fruit")
	assert.Equal(t, engine.Ignored, o)

	changed, _ := comprehension.Choose("m1", "yes")
	assert.False(t, changed)

	assert.Empty(t, sink.published)
	assert.True(t, cloze.Frozen())
}

func TestConstructors_RejectWrongKind(t *testing.T) {
	_, err := NewCloze(categorizeQuestion(), nil)
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = NewCategorize(comprehensionQuestion(), nil)
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = NewComprehension(clozeQuestion("cat"), nil)
	assert.ErrorIs(t, err, ErrKindMismatch)
}
