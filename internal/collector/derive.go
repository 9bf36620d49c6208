package collector

import "github.com/SAP-F-2025/form-service/internal/models"

// Derivations are pure functions of assignment state; calling one twice
// without an intervening interaction yields identical output.

// DeriveCategorize maps item id to category for every placed item of q.
// Placements naming unknown items or categories are dropped.
func DeriveCategorize(q *models.CategorizeQuestion, assignments map[string]string) models.CategorizeAnswer {
	out := make(models.CategorizeAnswer, len(assignments))
	for _, item := range q.Items {
		category, ok := assignments[item.ID]
		if !ok || !q.HasCategory(category) {
			continue
		}
		out[item.ID] = category
	}
	return out
}

// DeriveCloze returns one entry per blank marker, "" where nothing is placed.
func DeriveCloze(q *models.ClozeQuestion, assignments map[int]string) models.ClozeAnswer {
	out := make(models.ClozeAnswer, q.BlankCount())
	for i := range out {
		out[i] = assignments[i]
	}
	return out
}

// DeriveComprehension keeps the choices that name a known mcq and one of its options.
func DeriveComprehension(q *models.ComprehensionQuestion, choices map[string]string) models.ComprehensionAnswer {
	out := make(models.ComprehensionAnswer, len(choices))
	for _, mcq := range q.MCQs {
		option, ok := choices[mcq.ID]
		if !ok || !mcq.HasOption(option) {
			continue
		}
		out[mcq.ID] = option
	}
	return out
}
