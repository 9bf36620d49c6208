package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewResponseHandler(
	responseService services.ResponseService,
	exportService services.ExportService,
	logger utils.Logger,
) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
		exportService:   exportService,
	}
}

// SubmitResponse stores the answers of one respondent
// @Summary Submit response
// @Tags responses
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param response body models.SubmitResponseRequest true "Answers"
// @Success 201 {object} models.Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{formId}/responses [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	formID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	var req models.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Submitting response", "form_id", formID, "answer_count", len(req.Answers))

	response, err := h.responseService.Submit(c.Request.Context(), formID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponses lists stored responses of a form, newest first
// @Summary List responses
// @Tags responses
// @Produce json
// @Param formId path string true "Form ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Param sort query string false "asc or desc" default(desc)
// @Success 200 {object} models.FormResponses
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{formId}/responses [get]
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	formID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	filters := repositories.ResponseFilters{
		Limit:     parseIntQuery(c, "limit", 50),
		Offset:    parseIntQuery(c, "offset", 0),
		SortOrder: c.DefaultQuery("sort", "desc"),
	}

	list, err := h.responseService.ListByForm(c.Request.Context(), formID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetResponse returns one stored response of a form
// @Summary Get response
// @Tags responses
// @Produce json
// @Param formId path string true "Form ID"
// @Param responseId path string true "Response ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{formId}/responses/{responseId} [get]
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	formID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}
	responseID, ok := h.parseStringParam(c, "responseId")
	if !ok {
		return
	}

	response, err := h.responseService.GetByID(c.Request.Context(), responseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if response.FormID != formID {
		h.handleServiceError(c, services.ErrResponseNotFound)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExportResponses downloads the responses of a form as an xlsx workbook
// @Summary Export responses
// @Tags responses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param formId path string true "Form ID"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{formId}/responses/export [get]
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	formID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting responses", "form_id", formID)

	data, err := h.exportService.ExportResponses(c.Request.Context(), formID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "responses-"+formID+".xlsx"))
	c.Data(http.StatusOK, xlsxContentType, data)
}
