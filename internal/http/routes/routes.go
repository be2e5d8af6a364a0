package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/http/handlers"
	"github.com/pixstudio/photo-studio/internal/http/middleware"
)

type Router struct {
	handler *handlers.Handler
	logger  *zap.Logger
}

func NewRouter(handler *handlers.Handler, logger *zap.Logger) *Router {
	return &Router{
		handler: handler,
		logger:  logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ValidateContentType())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.handler.HealthCheck)
		v1.GET("/stats", r.handler.GetStats)

		v1.GET("/settings", r.handler.GetSettings)
		v1.PUT("/settings", r.handler.UpdateSettings)

		images := v1.Group("/images")
		{
			images.POST("/upload", r.handler.UploadImage)
			images.POST("/generate", r.handler.GenerateImage)
			images.POST("/enhance", r.handler.EnhanceImage)
			images.POST("/export", r.handler.ExportImage)
			images.DELETE("/*key", r.handler.DeleteImage)
		}

		v1.GET("/jobs/:id", r.handler.GetJob)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Photo studio is running",
		})
	})

	return router
}
