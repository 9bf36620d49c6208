package models

import (
	"time"

	"gorm.io/datatypes"
)

type Response struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:uuid"`
	FormID    string                      `json:"formId" gorm:"type:uuid;not null;index"`
	Answers   datatypes.JSONSlice[Answer] `json:"answers" gorm:"type:jsonb"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`

	Form Form `json:"-" gorm:"foreignKey:FormID"`
}

func (Response) TableName() string {
	return "responses"
}
