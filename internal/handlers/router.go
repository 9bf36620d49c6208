package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/utils"
)

type HandlerManager struct {
	formHandler     *FormHandler
	responseHandler *ResponseHandler
	authorAuth      gin.HandlerFunc
	logger          utils.Logger
}

// NewHandlerManager builds the handlers. A nil parser leaves form creation
// unauthenticated.
func NewHandlerManager(serviceManager *services.ServiceManager, parser TokenParser, logger utils.Logger) *HandlerManager {
	hm := &HandlerManager{
		formHandler:     NewFormHandler(serviceManager.Form(), logger),
		responseHandler: NewResponseHandler(serviceManager.Response(), serviceManager.Export(), logger),
		logger:          logger,
	}
	if parser != nil {
		hm.authorAuth = AuthMiddleware(parser, NewBaseHandler(logger))
	}
	return hm
}

// NewRouter returns a gin engine with the request middleware and all routes.
func (hm *HandlerManager) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.RequestID(),
		utils.LoggerMiddleware(hm.logger),
		utils.ContextLogger(hm.logger),
	)
	hm.SetupRoutes(router)
	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	api := router.Group("/api")
	{
		forms := api.Group("/forms")
		{
			create := []gin.HandlerFunc{hm.formHandler.CreateForm}
			if hm.authorAuth != nil {
				create = append([]gin.HandlerFunc{hm.authorAuth}, create...)
			}
			forms.POST("", create...)
			forms.GET("/:id", hm.formHandler.GetForm)

			// Responses of a form
			forms.POST("/:id/responses", hm.responseHandler.SubmitResponse)
			forms.GET("/:id/responses", hm.responseHandler.ListResponses)
			forms.GET("/:id/responses/export", hm.responseHandler.ExportResponses)
			forms.GET("/:id/responses/:responseId", hm.responseHandler.GetResponse)
		}
	}
}
