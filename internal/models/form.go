package models

import (
	"time"

	"gorm.io/datatypes"
)

// Form is an ordered sequence of questions. Questions are stored as one
// jsonb document in the flat wire shape of Question.
type Form struct {
	ID          string                        `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string                        `json:"title" gorm:"not null;size:200"`
	HeaderImage *string                       `json:"headerImage,omitempty" gorm:"size:500"`
	Questions   datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb"`
	CreatedBy   *string                       `json:"createdBy,omitempty" gorm:"size:255;index"`
	CreatedAt   time.Time                     `json:"createdAt"`
	UpdatedAt   time.Time                     `json:"updatedAt"`
}

func (Form) TableName() string {
	return "forms"
}

// Question returns the question with the given id.
func (f *Form) Question(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionIDs returns question ids in declaration order.
func (f *Form) QuestionIDs() []string {
	ids := make([]string, 0, len(f.Questions))
	for _, q := range f.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}
