package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/models"
)

// UploadImage stores a source photo and returns its storage key and URL,
// so later edit requests can reference it without re-uploading.
func (h *Handler) UploadImage(c *gin.Context) {
	if h.storage == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Storage is not configured")
		return
	}

	file, header, err := c.Request.FormFile(imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, contentType, err := h.readUploadedImage(file, header)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	key, url, err := h.storage.UploadSource(c.Request.Context(), data, header.Filename)
	if err != nil {
		h.logger.Error("Failed to store upload", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to store image")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: gin.H{
			"source_key":  key,
			"source_url":  url,
			"source_mime": contentType,
		},
	})
}

// DeleteImage removes a previously uploaded source that is no longer
// needed. Only keys under sources/ are accepted; results and cache entries
// expire on their own.
func (h *Handler) DeleteImage(c *gin.Context) {
	if h.storage == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Storage is not configured")
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if !strings.HasPrefix(key, "sources/") {
		h.respondError(c, http.StatusBadRequest, "Only uploaded sources can be deleted")
		return
	}

	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		h.logger.Error("Failed to delete source",
			zap.String("key", key),
			zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    gin.H{"deleted": key},
	})
}

// GenerateImage queues a prompt-driven edit of a previously uploaded (or
// freshly attached) source image.
func (h *Handler) GenerateImage(c *gin.Context) {
	prompt := strings.TrimSpace(c.PostForm("prompt"))
	if prompt == "" {
		h.respondError(c, http.StatusBadRequest, "Prompt is required")
		return
	}

	if c.PostForm("enhance_prompt") == "true" && h.enhancer != nil {
		enhanced, err := h.enhancer.Enhance(c.Request.Context(), prompt)
		if err != nil {
			// Prompt rewriting is a convenience; fall back to the original.
			h.logger.Warn("Prompt enhancement failed", zap.Error(err))
		} else {
			prompt = enhanced
		}
	}

	h.enqueueEditJob(c, models.JobKindGenerate, prompt)
}

// EnhanceImage queues an enhancement pass over a source image.
func (h *Handler) EnhanceImage(c *gin.Context) {
	h.enqueueEditJob(c, models.JobKindEnhance, "")
}

func (h *Handler) enqueueEditJob(c *gin.Context, kind, prompt string) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Editing queue is not available")
		return
	}

	job := &models.EditJob{
		ID:        uuid.New().String(),
		Kind:      kind,
		Prompt:    prompt,
		CreatedAt: time.Now(),
	}

	if err := h.attachSource(c, job); err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.queue.PublishJob(c.Request.Context(), job); err != nil {
		h.logger.Error("Failed to enqueue job", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to queue the edit")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

// attachSource resolves the job's source image: an attached file wins,
// otherwise a reference to an earlier upload is accepted.
func (h *Handler) attachSource(c *gin.Context, job *models.EditJob) error {
	file, header, err := c.Request.FormFile(imageParamKey)
	if err == nil {
		defer file.Close()

		data, contentType, err := h.readUploadedImage(file, header)
		if err != nil {
			return err
		}
		if h.storage == nil {
			return errNoSource
		}
		key, url, err := h.storage.UploadSource(c.Request.Context(), data, header.Filename)
		if err != nil {
			return err
		}
		job.SourceKey = key
		job.SourceURL = url
		job.SourceMIME = contentType
		return nil
	}

	job.SourceKey = c.PostForm("source_key")
	job.SourceURL = c.PostForm("source_url")
	job.SourceMIME = c.PostForm("source_mime")
	if job.SourceKey == "" && job.SourceURL == "" {
		return errNoSource
	}
	return nil
}

// GetJob reports the status of a queued edit.
func (h *Handler) GetJob(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Editing queue is not available")
		return
	}

	job, err := h.queue.Jobs().Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to load job", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	}
	if job == nil {
		h.respondError(c, http.StatusNotFound, "Unknown job")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}
