package models

import "encoding/json"

// CreateFormRequest is the body of POST /api/forms.
type CreateFormRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	HeaderImage *string    `json:"headerImage,omitempty" validate:"omitempty,url,max=500"`
	Questions   []Question `json:"questions"`
}

// SubmitResponseRequest is the body of POST /api/forms/:formId/responses.
type SubmitResponseRequest struct {
	Answers []AnswerInput `json:"answers" validate:"dive"`
}

// AnswerInput is one submitted entry. The answer shape is interpreted against
// the kind of the referenced question.
type AnswerInput struct {
	QuestionID string          `json:"questionId" validate:"required"`
	Answer     json.RawMessage `json:"answer" validate:"required"`
}

// FormResponses is the body of GET /api/forms/:formId/responses.
type FormResponses struct {
	FormID    string     `json:"formId"`
	Total     int64      `json:"total"`
	Responses []Response `json:"responses"`
}

// Inputs converts collected answers into the submission wire shape.
func Inputs(answers []Answer) []AnswerInput {
	out := make([]AnswerInput, 0, len(answers))
	for _, a := range answers {
		out = append(out, AnswerInput{QuestionID: a.QuestionID, Answer: a.Value})
	}
	return out
}
