package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/pixstudio/photo-studio/internal/models"
	"github.com/pixstudio/photo-studio/pkg/utils"
)

var errNoSource = errors.New("an image file or a source_key/source_url reference is required")

func (h *Handler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// userID scopes settings to a caller. Authentication is handled upstream;
// the header is trusted here.
func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

// readUploadedImage pulls the uploaded file into memory, enforcing the
// configured size cap and the allowed image types.
func (h *Handler) readUploadedImage(file multipart.File, header *multipart.FileHeader) ([]byte, string, error) {
	maxSize := h.config.Storage.MaxFileSize
	if header.Size > maxSize {
		return nil, "", fmt.Errorf("file size %d exceeds maximum allowed size %d", header.Size, maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", fmt.Errorf("file exceeds maximum allowed size %d", maxSize)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty upload")
	}

	contentType := utils.DetectImageType(data)
	if !utils.IsValidImageType(contentType) {
		return nil, "", fmt.Errorf("unsupported image type %s", contentType)
	}

	return data, contentType, nil
}
