package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides request-scoped logging and error responses
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

// LogRequest logs an incoming request with handler specific fields
func (h *BaseHandler) LogRequest(c *gin.Context, message string, fields ...interface{}) {
	fields = append(fields, "user_id", h.userID(c))
	h.log(c).Info(message, fields...)
}

// LogError logs err with the request context
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, fields ...interface{}) {
	fields = append(fields, "user_id", h.userID(c))
	h.log(c).LogError(err, message, fields...)
}

func (h *BaseHandler) userID(c *gin.Context) interface{} {
	if userID, exists := c.Get(userIDKey); exists {
		return userID
	}
	return nil
}

// RespondWithError sends an ErrorResponse and aborts the chain
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	if len(details) > 0 {
		resp.Details = details[0]
	}

	if statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.log(c).Warn(message, "status_code", statusCode, "error", err)
	}

	c.AbortWithStatusJSON(statusCode, resp)
}

// handleServiceError maps service errors onto HTTP status codes
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, services.ValidationErrors{*validationError})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidFormID):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid form id", err)
	case errors.Is(err, services.ErrInvalidResponseID):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid response id", err)
	case errors.Is(err, services.ErrFormNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Form not found", err)
	case errors.Is(err, services.ErrResponseNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Response not found", err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found", err)
	default:
		h.LogError(c, err, "Unexpected service error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

// ===== PARAM HELPERS =====

func (h *BaseHandler) parseStringParam(c *gin.Context, param string) (string, bool) {
	value := strings.TrimSpace(c.Param(param))
	if value == "" {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, errors.New("id cannot be empty"))
		return "", false
	}
	return value, true
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "form-service",
	})
}
