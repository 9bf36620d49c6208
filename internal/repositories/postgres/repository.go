package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
)

type Repository struct {
	db        *gorm.DB
	forms     repositories.FormRepository
	responses repositories.ResponseRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:        db,
		forms:     NewFormPostgreSQL(db),
		responses: NewResponsePostgreSQL(db),
	}
}

func (r *Repository) Forms() repositories.FormRepository {
	return r.forms
}

func (r *Repository) Responses() repositories.ResponseRepository {
	return r.responses
}

// Migrate creates or updates the forms and responses tables
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Form{}, &models.Response{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
