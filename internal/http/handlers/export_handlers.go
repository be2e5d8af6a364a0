package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/export"
	"github.com/pixstudio/photo-studio/internal/models"
	"github.com/pixstudio/photo-studio/internal/services/storage"
)

// ExportImage renders the uploaded image with the requested resolution and
// color grading and streams the encoded file back. The pipeline runs
// synchronously in the request; only the model-backed edits go through the
// job queue.
func (h *Handler) ExportImage(c *gin.Context) {
	file, header, err := c.Request.FormFile(imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, _, err := h.readUploadedImage(file, header)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := h.resolveExportSettings(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if cached := h.cachedExport(c, data, settings); cached != nil {
		h.respondWithFile(c, settings.Format, cached)
		return
	}

	result, err := export.Export(bytes.NewReader(data), settings)
	if err != nil {
		h.respondExportError(c, err)
		return
	}

	h.cacheExport(c, data, settings, result.Data)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "image/"+result.Format, result.Data)
}

// resolveExportSettings starts from the caller's persisted settings and
// overlays the optional JSON payload field.
func (h *Handler) resolveExportSettings(c *gin.Context) (models.ExportSettings, error) {
	settings := h.settings.Load(c.Request.Context(), userID(c))

	if payload := c.PostForm(payloadParamKey); payload != "" {
		if err := json.Unmarshal([]byte(payload), &settings); err != nil {
			return settings, fmt.Errorf("invalid settings payload: %v", err)
		}
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

func (h *Handler) respondExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, export.ErrDecode), errors.Is(err, export.ErrInvalidDimension):
		h.respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Export failed", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to export image")
	}
}

func (h *Handler) respondWithFile(c *gin.Context, format string, data []byte) {
	filename := fmt.Sprintf("photo-studio.%s", format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/"+format, data)
}

func (h *Handler) cachedExport(c *gin.Context, source []byte, settings models.ExportSettings) []byte {
	if h.storage == nil {
		return nil
	}
	key := storage.ExportCacheKey(string(source), settings)
	data, err := h.storage.GetCachedExport(c.Request.Context(), key)
	if err != nil {
		h.logger.Warn("Export cache lookup failed", zap.Error(err))
		return nil
	}
	return data
}

func (h *Handler) cacheExport(c *gin.Context, source []byte, settings models.ExportSettings, data []byte) {
	if h.storage == nil {
		return
	}
	key := storage.ExportCacheKey(string(source), settings)
	if err := h.storage.CacheExport(c.Request.Context(), key, data); err != nil {
		h.logger.Warn("Failed to cache export", zap.Error(err))
	}
}
