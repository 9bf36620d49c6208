package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/form-service/internal/models"
)

// FormValidator checks the kind-specific rules a form must satisfy before it
// is persisted.
type FormValidator struct {
	validate *validator.Validate
}

func NewFormValidator(validate *validator.Validate) *FormValidator {
	return &FormValidator{validate: validate}
}

// ValidateForm checks the title and every question.
func (v *FormValidator) ValidateForm(title string, questions []models.Question) ValidationErrors {
	var errs ValidationErrors
	if title == "" {
		errs.Add("title", "required", "is required", title)
	}
	return append(errs, v.ValidateQuestions(questions)...)
}

// ValidateQuestions checks each question against the rules of its kind.
// Question ids, when present, must be unique.
func (v *FormValidator) ValidateQuestions(questions []models.Question) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, len(questions))

	for i, q := range questions {
		field := fmt.Sprintf("questions[%d]", i)

		if q.ID != "" {
			if seen[q.ID] {
				errs.Add(field+".id", "unique", "must be unique within the form", q.ID)
			}
			seen[q.ID] = true
		}

		if err := v.validate.Var(string(q.Kind), "required,question_kind"); err != nil {
			for _, e := range ToValidationErrors(err) {
				errs.Add(field+".type", e.Rule, e.Message, q.Kind)
			}
			continue
		}

		switch q.Kind {
		case models.KindCategorize:
			errs = append(errs, v.validateCategorize(field, q.Categorize)...)
		case models.KindCloze:
			errs = append(errs, v.validateCloze(field, q.Cloze)...)
		case models.KindComprehension:
			errs = append(errs, v.validateComprehension(field, q.Comprehension)...)
		}
	}

	return errs
}

func (v *FormValidator) validateCategorize(field string, c *models.CategorizeQuestion) ValidationErrors {
	var errs ValidationErrors
	if c == nil || len(c.Categories) == 0 {
		errs.Add(field+".categories", "min", "must contain at least one category", nil)
		return errs
	}

	names := make(map[string]bool, len(c.Categories))
	for j, name := range c.Categories {
		f := fmt.Sprintf("%s.categories[%d]", field, j)
		switch {
		case name == "":
			errs.Add(f, "required", "is required", name)
		case names[name]:
			errs.Add(f, "unique", "must not contain duplicates", name)
		}
		names[name] = true
	}

	ids := make(map[string]bool, len(c.Items))
	for j, item := range c.Items {
		f := fmt.Sprintf("%s.items[%d]", field, j)
		errs = append(errs, v.structErrors(f, item)...)
		if item.ID != "" {
			if ids[item.ID] {
				errs.Add(f+".id", "unique", "must be unique within the question", item.ID)
			}
			ids[item.ID] = true
		}
		if item.Category != nil && !names[*item.Category] {
			errs.Add(f+".category", "oneof", "must be one of the question categories", *item.Category)
		}
	}

	return errs
}

// validateCloze accepts any number of blanks and options; surplus blanks are
// simply unfillable.
func (v *FormValidator) validateCloze(field string, c *models.ClozeQuestion) ValidationErrors {
	var errs ValidationErrors
	if c == nil {
		errs.Add(field+".sentence", "required", "is required", nil)
		return errs
	}
	for j, option := range c.Options {
		if option == "" {
			errs.Add(fmt.Sprintf("%s.options[%d]", field, j), "required", "is required", option)
		}
	}
	return errs
}

func (v *FormValidator) validateComprehension(field string, c *models.ComprehensionQuestion) ValidationErrors {
	var errs ValidationErrors
	if c == nil {
		errs.Add(field+".passage", "required", "is required", nil)
		return errs
	}

	ids := make(map[string]bool, len(c.MCQs))
	for j, mcq := range c.MCQs {
		f := fmt.Sprintf("%s.mcqs[%d]", field, j)
		errs = append(errs, v.structErrors(f, mcq)...)
		if mcq.ID != "" {
			if ids[mcq.ID] {
				errs.Add(f+".id", "unique", "must be unique within the question", mcq.ID)
			}
			ids[mcq.ID] = true
		}
		for k, option := range mcq.Options {
			if option == "" {
				errs.Add(fmt.Sprintf("%s.options[%d]", f, k), "required", "is required", option)
			}
		}
		if mcq.CorrectAnswer != nil && !mcq.HasOption(*mcq.CorrectAnswer) {
			errs.Add(f+".correctAnswer", "oneof", "must be one of the options", *mcq.CorrectAnswer)
		}
	}
	return errs
}

// structErrors runs tag rules on s and prefixes the reported fields.
func (v *FormValidator) structErrors(prefix string, s interface{}) ValidationErrors {
	errs := ToValidationErrors(v.validate.Struct(s))
	for i := range errs {
		errs[i].Field = prefix + "." + errs[i].Field
	}
	return errs
}
