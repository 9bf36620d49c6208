package services

import (
	"log/slog"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

// ServiceManager wires the services over one repository, cache and publisher.
type ServiceManager struct {
	form     FormService
	response ResponseService
	export   ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	formCache *cache.FormCache,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) *ServiceManager {
	form := NewFormService(repo, formCache, publisher, validator, logger)
	return &ServiceManager{
		form:     form,
		response: NewResponseService(repo, form, publisher, validator, logger),
		export:   NewExportService(repo, form, logger),
	}
}

func (m *ServiceManager) Form() FormService         { return m.form }
func (m *ServiceManager) Response() ResponseService { return m.response }
func (m *ServiceManager) Export() ExportService     { return m.export }
