package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
)

type FormPostgreSQL struct {
	db *gorm.DB
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{db: db}
}

// Create inserts a form together with its questions document
func (f *FormPostgreSQL) Create(ctx context.Context, form *models.Form) error {
	if err := f.db.WithContext(ctx).Create(form).Error; err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}
	return nil
}

// GetByID retrieves a form by ID
func (f *FormPostgreSQL) GetByID(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	if err := f.db.WithContext(ctx).Where("id = ?", id).First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}
