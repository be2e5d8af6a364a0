package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/config"
	"github.com/pixstudio/photo-studio/internal/http/handlers"
	"github.com/pixstudio/photo-studio/internal/http/routes"
	"github.com/pixstudio/photo-studio/internal/services/genai"
	"github.com/pixstudio/photo-studio/internal/services/prompt"
	"github.com/pixstudio/photo-studio/internal/services/queue"
	"github.com/pixstudio/photo-studio/internal/services/settings"
	"github.com/pixstudio/photo-studio/internal/services/storage"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Shared Redis client for settings, job state and the export cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	settingsStore := settings.NewStore(redisClient, logger)

	storageService, err := storage.NewStorageService(cfg, redisClient)
	if err != nil {
		logger.Fatal("Failed to initialize storage service", zap.Error(err))
	}

	enhancer := newPromptEnhancer(cfg)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	queueService := newQueueService(workerCtx, cfg, storageService, redisClient, logger)
	if queueService != nil {
		defer queueService.Close()
	}

	// Initialize handlers
	handler := handlers.New(settingsStore, storageService, queueService, enhancer, logger, cfg)
	router := routes.NewRouter(handler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopWorkers()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newQueueService wires the edit-job queue and its workers. The service
// degrades gracefully: without a model API key or a reachable broker, the
// synchronous export path still works.
func newQueueService(
	ctx context.Context,
	cfg *config.Config,
	storageService *storage.StorageService,
	redisClient *redis.Client,
	logger *zap.Logger,
) *queue.QueueService {
	if cfg.GenAI.APIKey == "" {
		logger.Warn("GENAI_API_KEY not set; edit jobs are disabled")
		return nil
	}

	generator, err := genai.NewClient(genai.Options{
		APIKey:  cfg.GenAI.APIKey,
		BaseURL: cfg.GenAI.BaseURL,
		Model:   cfg.GenAI.Model,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("Failed to initialize model client; edit jobs are disabled", zap.Error(err))
		return nil
	}

	jobs := queue.NewJobStore(redisClient)
	queueService, err := queue.NewQueueService(cfg.RabbitMQ.URL, generator, storageService, jobs, logger)
	if err != nil {
		logger.Warn("Failed to initialize queue service; edit jobs are disabled", zap.Error(err))
		return nil
	}

	for i := 0; i < cfg.Server.Workers; i++ {
		if err := queueService.StartWorker(ctx, i+1); err != nil {
			logger.Error("Failed to start worker", zap.Int("worker_id", i+1), zap.Error(err))
		}
	}

	return queueService
}

func newPromptEnhancer(cfg *config.Config) prompt.Enhancer {
	if cfg.OpenAI.APIKey != "" {
		return prompt.NewOpenAIEnhancer(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}
	return prompt.NewStaticEnhancer()
}
