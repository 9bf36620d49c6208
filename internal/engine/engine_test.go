package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEngine() *Engine[string, string] {
	categories := map[string]bool{"Fruit": true, "Veg": true}
	items := map[string]bool{"1": true, "2": true, "3": true}
	return New(Rules[string, string]{
		IsSource: func(id string) bool { return items[id] },
		Accepts:  func(_ string, target string) bool { return categories[target] },
	})
}

func TestEngine_InitialState(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, Idle, e.Phase())
	_, ok := e.Pending()
	assert.False(t, ok)
	assert.Equal(t, 0, e.Len())
}

func TestEngine_Transitions(t *testing.T) {
	tests := []struct {
		name        string
		run         func(e *Engine[string, string]) Outcome
		wantOutcome Outcome
		wantPhase   Phase
		wantPending string
		wantAssign  map[string]string
	}{
		{
			name: "select source from idle",
			run: func(e *Engine[string, string]) Outcome {
				return e.SelectSource("1")
			},
			wantOutcome: Selected,
			wantPhase:   SourceSelected,
			wantPending: "1",
			wantAssign:  map[string]string{},
		},
		{
			name: "same source twice deselects",
			run: func(e *Engine[string, string]) Outcome {
				e.SelectSource("1")
				return e.SelectSource("1")
			},
			wantOutcome: Deselected,
			wantPhase:   Idle,
			wantAssign:  map[string]string{},
		},
		{
			name: "other source replaces pending without commit",
			run: func(e *Engine[string, string]) Outcome {
				e.SelectSource("1")
				return e.SelectSource("2")
			},
			wantOutcome: Switched,
			wantPhase:   SourceSelected,
			wantPending: "2",
			wantAssign:  map[string]string{},
		},
		{
			name: "target commits pending source",
			run: func(e *Engine[string, string]) Outcome {
				e.SelectSource("1")
				return e.SelectTarget("Fruit")
			},
			wantOutcome: Assigned,
			wantPhase:   Idle,
			wantAssign:  map[string]string{"1": "Fruit"},
		},
		{
			name: "target without pending source is ignored",
			run: func(e *Engine[string, string]) Outcome {
				return e.SelectTarget("Fruit")
			},
			wantOutcome: Ignored,
			wantPhase:   Idle,
			wantAssign:  map[string]string{},
		},
		{
			name: "selecting an assigned source unassigns it",
			run: func(e *Engine[string, string]) Outcome {
				e.SelectSource("1")
				e.SelectTarget("Fruit")
				return e.SelectSource("1")
			},
			wantOutcome: Unassigned,
			wantPhase:   Idle,
			wantAssign:  map[string]string{},
		},
		{
			name: "assigned source clicked while another is pending",
			run: func(e *Engine[string, string]) Outcome {
				e.SelectSource("1")
				e.SelectTarget("Fruit")
				e.SelectSource("2")
				return e.SelectSource("1")
			},
			wantOutcome: Unassigned,
			wantPhase:   Idle,
			wantAssign:  map[string]string{},
		},
		{
			name: "rejected target keeps pending source",
			run: func(e *Engine[string, string]) Outcome {
				e.SelectSource("1")
				return e.SelectTarget("Meat")
			},
			wantOutcome: Ignored,
			wantPhase:   SourceSelected,
			wantPending: "1",
			wantAssign:  map[string]string{},
		},
		{
			name: "unknown source is ignored",
			run: func(e *Engine[string, string]) Outcome {
				return e.SelectSource("99")
			},
			wantOutcome: Ignored,
			wantPhase:   Idle,
			wantAssign:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()

			outcome := tt.run(e)

			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantPhase, e.Phase())
			pending, ok := e.Pending()
			assert.Equal(t, tt.wantPending != "", ok)
			assert.Equal(t, tt.wantPending, pending)
			assert.Equal(t, tt.wantAssign, e.Assignments())
		})
	}
}

func TestEngine_Reassign(t *testing.T) {
	e := newTestEngine()

	e.SelectSource("1")
	e.SelectTarget("Fruit")

	// release, pick again, drop elsewhere
	assert.Equal(t, Unassigned, e.SelectSource("1"))
	assert.Equal(t, Selected, e.SelectSource("1"))
	assert.Equal(t, Assigned, e.SelectTarget("Veg"))

	assert.Equal(t, map[string]string{"1": "Veg"}, e.Assignments())
	assert.False(t, e.HasTarget("Fruit"))
	assert.True(t, e.HasTarget("Veg"))
}

func TestEngine_AssignmentsNeverExceedSources(t *testing.T) {
	e := newTestEngine()
	clicks := []struct {
		source string
		target string
	}{
		{"1", "Fruit"}, {"2", "Veg"}, {"3", "Fruit"}, {"1", ""}, {"1", "Veg"},
		{"2", ""}, {"2", "Fruit"}, {"3", "Nope"}, {"3", "Veg"},
	}

	for _, click := range clicks {
		e.SelectSource(click.source)
		if click.target != "" {
			e.SelectTarget(click.target)
		}

		assert.LessOrEqual(t, e.Len(), 3)
		for _, target := range e.Assignments() {
			assert.Contains(t, []string{"Fruit", "Veg"}, target)
		}
	}
}

func TestEngine_AssignmentsIsACopy(t *testing.T) {
	e := newTestEngine()
	e.SelectSource("1")
	e.SelectTarget("Fruit")

	snapshot := e.Assignments()
	snapshot["2"] = "Veg"

	_, ok := e.Assigned("2")
	assert.False(t, ok)
	assert.Equal(t, 1, e.Len())
}

func TestOutcome_Changed(t *testing.T) {
	assert.True(t, Assigned.Changed())
	assert.True(t, Unassigned.Changed())
	assert.False(t, Selected.Changed())
	assert.False(t, Deselected.Changed())
	assert.False(t, Switched.Changed())
	assert.False(t, Ignored.Changed())
}
