package validator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/SAP-F-2025/form-service/internal/models"
)

// Answer shapes per question kind. Semantic checks against the question
// itself run after the shape is accepted.
var answerSchemas = map[models.QuestionKind]string{
	models.KindCategorize: `{
		"type": "object",
		"additionalProperties": {"type": "string", "minLength": 1}
	}`,
	models.KindCloze: `{
		"type": "array",
		"items": {"type": "string"}
	}`,
	models.KindComprehension: `{
		"type": "object",
		"additionalProperties": {"type": "string", "minLength": 1}
	}`,
}

// AnswerValidator checks submitted answers against the question they refer to.
type AnswerValidator struct {
	schemas map[models.QuestionKind]*jsonschema.Schema
}

func NewAnswerValidator() *AnswerValidator {
	c := jsonschema.NewCompiler()
	schemas := make(map[models.QuestionKind]*jsonschema.Schema, len(answerSchemas))
	for kind, def := range answerSchemas {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(def)))
		if err != nil {
			panic(fmt.Sprintf("parse %s answer schema: %v", kind, err))
		}
		url := fmt.Sprintf("schema://answers/%s.json", kind)
		if err := c.AddResource(url, doc); err != nil {
			panic(fmt.Sprintf("add %s answer schema: %v", kind, err))
		}
		schemas[kind] = c.MustCompile(url)
	}
	return &AnswerValidator{schemas: schemas}
}

// Validate decodes raw as the canonical answer for q. field is used as the
// prefix of reported errors.
func (v *AnswerValidator) Validate(field string, q models.Question, raw json.RawMessage) (models.AnswerValue, ValidationErrors) {
	var errs ValidationErrors

	schema, ok := v.schemas[q.Kind]
	if !ok || !q.HasPayload() {
		errs.Add(field, "question_kind", "refers to a question of unknown type", q.Kind)
		return nil, errs
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		errs.Add(field, "json", "must be valid JSON", nil)
		return nil, errs
	}
	if err := schema.Validate(doc); err != nil {
		errs.Add(field, "shape", fmt.Sprintf("must be a valid %s answer", q.Kind), nil)
		return nil, errs
	}

	switch q.Kind {
	case models.KindCategorize:
		var answer models.CategorizeAnswer
		if err := json.Unmarshal(raw, &answer); err != nil {
			errs.Add(field, "shape", "must be an object of item ids to categories", nil)
			return nil, errs
		}
		return answer, validateCategorizeAnswer(field, q.Categorize, answer)
	case models.KindCloze:
		var answer models.ClozeAnswer
		if err := json.Unmarshal(raw, &answer); err != nil {
			errs.Add(field, "shape", "must be an array of words", nil)
			return nil, errs
		}
		return answer, validateClozeAnswer(field, q.Cloze, answer)
	default:
		var answer models.ComprehensionAnswer
		if err := json.Unmarshal(raw, &answer); err != nil {
			errs.Add(field, "shape", "must be an object of mcq ids to options", nil)
			return nil, errs
		}
		return answer, validateComprehensionAnswer(field, q.Comprehension, answer)
	}
}

func validateCategorizeAnswer(field string, q *models.CategorizeQuestion, answer models.CategorizeAnswer) ValidationErrors {
	var errs ValidationErrors
	for itemID, category := range answer {
		f := fmt.Sprintf("%s.%s", field, itemID)
		if _, ok := q.Item(itemID); !ok {
			errs.Add(f, "item", "is not an item of the question", itemID)
			continue
		}
		if !q.HasCategory(category) {
			errs.Add(f, "oneof", "must be one of the question categories", category)
		}
	}
	return errs
}

func validateClozeAnswer(field string, q *models.ClozeQuestion, answer models.ClozeAnswer) ValidationErrors {
	var errs ValidationErrors
	if blanks := q.BlankCount(); len(answer) != blanks {
		errs.Add(field, "len", fmt.Sprintf("must have exactly %d entries", blanks), len(answer))
		return errs
	}

	options := make(map[string]bool, len(q.Options))
	for _, option := range q.Options {
		options[option] = true
	}
	used := make(map[string]bool, len(answer))
	for i, word := range answer {
		if word == "" {
			continue
		}
		f := fmt.Sprintf("%s[%d]", field, i)
		switch {
		case !options[word]:
			errs.Add(f, "oneof", "must be one of the options", word)
		case used[word]:
			errs.Add(f, "unique", "must not reuse a word", word)
		}
		used[word] = true
	}
	return errs
}

func validateComprehensionAnswer(field string, q *models.ComprehensionQuestion, answer models.ComprehensionAnswer) ValidationErrors {
	var errs ValidationErrors
	for mcqID, option := range answer {
		f := fmt.Sprintf("%s.%s", field, mcqID)
		mcq, ok := q.MCQ(mcqID)
		if !ok {
			errs.Add(f, "mcq", "is not a question of the passage", mcqID)
			continue
		}
		if !mcq.HasOption(option) {
			errs.Add(f, "oneof", "must be one of the options", option)
		}
	}
	return errs
}
