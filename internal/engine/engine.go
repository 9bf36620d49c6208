// Package engine implements the paired click-to-assign interaction shared by
// the Categorize and Cloze widgets: pick a source, then pick a target.
package engine

// Phase is the state of an Engine.
type Phase int

const (
	Idle           Phase = iota // No source pending
	SourceSelected              // A source is waiting for a target
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case SourceSelected:
		return "source_selected"
	default:
		return "unknown"
	}
}

// Outcome describes what a single transition did.
type Outcome int

const (
	Ignored    Outcome = iota // No state change
	Selected                  // Idle -> SourceSelected
	Deselected                // Same source clicked again
	Switched                  // Pending source replaced by another
	Unassigned                // An assigned source was released
	Assigned                  // Pending source committed to a target
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case Switched:
		return "switched"
	case Unassigned:
		return "unassigned"
	case Assigned:
		return "assigned"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome modified the assignments.
func (o Outcome) Changed() bool {
	return o == Assigned || o == Unassigned
}

// Rules restrict which sources and targets an Engine will act on.
// A nil func accepts everything.
type Rules[S comparable, T comparable] struct {
	// IsSource reports whether id may be selected at all.
	IsSource func(id S) bool
	// Accepts reports whether target may receive source right now.
	Accepts func(source S, target T) bool
}

// Engine is a two-phase pairing state machine. Assignments form a functional
// mapping: each source maps to at most one target. It is not safe for
// concurrent use; it belongs to the widget that drives it.
type Engine[S comparable, T comparable] struct {
	phase       Phase
	pending     S
	assignments map[S]T
	rules       Rules[S, T]
}

func New[S comparable, T comparable](rules Rules[S, T]) *Engine[S, T] {
	return &Engine[S, T]{
		phase:       Idle,
		assignments: make(map[S]T),
		rules:       rules,
	}
}

func (e *Engine[S, T]) Phase() Phase {
	return e.phase
}

// Pending returns the selected source while in SourceSelected.
func (e *Engine[S, T]) Pending() (S, bool) {
	if e.phase != SourceSelected {
		var zero S
		return zero, false
	}
	return e.pending, true
}

// SelectSource handles a click on a source.
//
// An assigned source is released back to the pool and the engine returns to
// Idle. Clicking the pending source again deselects it. Clicking another
// source replaces the pending one without committing anything.
func (e *Engine[S, T]) SelectSource(id S) Outcome {
	if e.rules.IsSource != nil && !e.rules.IsSource(id) {
		return Ignored
	}

	if _, ok := e.assignments[id]; ok {
		delete(e.assignments, id)
		e.clearPending()
		return Unassigned
	}

	switch e.phase {
	case SourceSelected:
		if e.pending == id {
			e.clearPending()
			return Deselected
		}
		e.pending = id
		return Switched
	default:
		e.pending = id
		e.phase = SourceSelected
		return Selected
	}
}

// SelectTarget commits the pending source to target. Without a pending
// source, or when the rules reject the pairing, it does nothing.
func (e *Engine[S, T]) SelectTarget(target T) Outcome {
	if e.phase != SourceSelected {
		return Ignored
	}
	if e.rules.Accepts != nil && !e.rules.Accepts(e.pending, target) {
		return Ignored
	}

	e.assignments[e.pending] = target
	e.clearPending()
	return Assigned
}

// Assigned returns the target currently holding id.
func (e *Engine[S, T]) Assigned(id S) (T, bool) {
	target, ok := e.assignments[id]
	return target, ok
}

// Assignments returns a copy of the current mapping.
func (e *Engine[S, T]) Assignments() map[S]T {
	out := make(map[S]T, len(e.assignments))
	for source, target := range e.assignments {
		out[source] = target
	}
	return out
}

// Len is the number of committed assignments.
func (e *Engine[S, T]) Len() int {
	return len(e.assignments)
}

// HasTarget reports whether any source is assigned to target.
func (e *Engine[S, T]) HasTarget(target T) bool {
	for _, t := range e.assignments {
		if t == target {
			return true
		}
	}
	return false
}

func (e *Engine[S, T]) clearPending() {
	var zero S
	e.pending = zero
	e.phase = Idle
}
