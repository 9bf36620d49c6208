package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/form-service/internal/models"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator *validator.Validate
	formValidator   *FormValidator
	answerValidator *AnswerValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		formValidator:   NewFormValidator(structValidator),
		answerValidator: NewAnswerValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and returns ValidationErrors on failure
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// ValidateCreateForm runs struct rules and then per-question rules.
func (v *Validator) ValidateCreateForm(req *models.CreateFormRequest) error {
	errs := ToValidationErrors(v.ValidateStruct(req))
	errs = append(errs, v.formValidator.ValidateQuestions(req.Questions)...)
	return errs.Err()
}

// Form returns the form validator
func (v *Validator) Form() *FormValidator {
	return v.formValidator
}

// Answer returns the answer validator
func (v *Validator) Answer() *AnswerValidator {
	return v.answerValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	// Question kind validation
	if err := validate.RegisterValidation("question_kind", validateQuestionKind); err != nil {
		panic(fmt.Sprintf("register question_kind: %v", err))
	}

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionKind(fl validator.FieldLevel) bool {
	return models.QuestionKind(fl.Field().String()).Valid()
}
