package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.Response) error {
	if err := r.db.WithContext(ctx).Omit("Form").Create(response).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id string) (*models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByForm returns responses of a form, newest first unless asked otherwise
func (r *ResponsePostgreSQL) ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Response{}).Where("form_id = ?", formID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var responses []*models.Response
	if err := applyPagination(query, filters.Limit, filters.Offset, filters.SortOrder).
		Find(&responses).Error; err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}
