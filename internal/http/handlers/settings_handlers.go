package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/models"
)

// GetSettings returns the caller's export settings, falling back to the
// defaults when nothing valid is persisted.
func (h *Handler) GetSettings(c *gin.Context) {
	settings := h.settings.Load(c.Request.Context(), userID(c))
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    settings,
	})
}

// UpdateSettings validates and persists a full settings record.
// Persistence is best-effort: a storage failure is logged and the settings
// still apply for the returned response.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var settings models.ExportSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid settings body: "+err.Error())
		return
	}
	if err := settings.Validate(); err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.settings.Save(c.Request.Context(), userID(c), settings); err != nil {
		h.logger.Warn("Failed to persist settings",
			zap.String("user_id", userID(c)),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    settings,
	})
}
