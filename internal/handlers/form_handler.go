package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/utils"
)

type FormHandler struct {
	BaseHandler
	formService services.FormService
}

func NewFormHandler(formService services.FormService, logger utils.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
	}
}

// CreateForm stores a new form
// @Summary Create form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.CreateFormRequest true "Form without id"
// @Success 201 {object} models.Form
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	var req models.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Creating form", "title", req.Title, "question_count", len(req.Questions))

	var createdBy *string
	if userID := c.GetString(userIDKey); userID != "" {
		createdBy = &userID
	}

	form, err := h.formService.Create(c.Request.Context(), &req, createdBy)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// GetForm returns a stored form
// @Summary Get form
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} models.Form
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	id, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	form, err := h.formService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}
