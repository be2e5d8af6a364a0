package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/config"
	"github.com/pixstudio/photo-studio/internal/models"
	"github.com/pixstudio/photo-studio/internal/services/prompt"
	"github.com/pixstudio/photo-studio/internal/services/queue"
	"github.com/pixstudio/photo-studio/internal/services/settings"
	"github.com/pixstudio/photo-studio/internal/services/storage"
)

const (
	imageParamKey   = "image"
	payloadParamKey = "payload"
)

type Handler struct {
	settings *settings.Store
	storage  *storage.StorageService
	queue    *queue.QueueService
	enhancer prompt.Enhancer
	logger   *zap.Logger
	config   *config.Config
}

func New(
	settingsStore *settings.Store,
	storageService *storage.StorageService,
	queueService *queue.QueueService,
	enhancer prompt.Enhancer,
	logger *zap.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		settings: settingsStore,
		storage:  storageService,
		queue:    queueService,
		enhancer: enhancer,
		logger:   logger,
		config:   cfg,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	services := map[string]string{}
	if h.storage != nil {
		services = h.storage.HealthCheck(c.Request.Context())
	}
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
	} else {
		services["rabbitmq"] = "not configured"
	}

	overall := calculateOverallHealth(services)
	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

// GetStats reports queue depth and cache occupancy for operators.
func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{"timestamp": time.Now()}

	if h.queue != nil {
		queueStats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Error("Failed to get queue stats", zap.Error(err))
		} else {
			stats["queue"] = queueStats
		}
	}

	if h.storage != nil {
		cacheStats, err := h.storage.GetCacheStats(c.Request.Context())
		if err != nil {
			h.logger.Error("Failed to get cache stats", zap.Error(err))
		} else {
			stats["cache"] = cacheStats
		}
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}

func calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
