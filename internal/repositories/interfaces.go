package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/form-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ResponseFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// FormRepository persists forms. Questions are stored with the form.
type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id string) (*models.Form, error)
}

// ResponseRepository persists submitted responses.
type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	GetByID(ctx context.Context, id string) (*models.Response, error)
	ListByForm(ctx context.Context, formID string, filters ResponseFilters) ([]*models.Response, int64, error)
}

// Repository groups the store repositories handed to services.
type Repository interface {
	Forms() FormRepository
	Responses() ResponseRepository
	Migrate(ctx context.Context) error
}

// IsNotFoundError reports whether err means the record does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
