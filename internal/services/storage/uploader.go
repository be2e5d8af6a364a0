package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pixstudio/photo-studio/pkg/utils"
)

// UploadSource stores an uploaded original and returns its storage key and
// public URL.
func (s *StorageService) UploadSource(ctx context.Context, data []byte, filename string) (string, string, error) {
	return s.upload(ctx, utils.GenerateStorageKey("sources", filename), data)
}

// UploadResult stores the output of a generation, enhancement or export
// call and returns its storage key and public URL.
func (s *StorageService) UploadResult(ctx context.Context, data []byte, filename string) (string, string, error) {
	return s.upload(ctx, utils.GenerateStorageKey("results", filename), data)
}

func (s *StorageService) upload(ctx context.Context, key string, data []byte) (string, string, error) {
	_, err := s.sbClient.UploadFile(s.bucket, key, bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return key, publicURL.SignedURL, nil
}

// Delete removes a stored object.
func (s *StorageService) Delete(ctx context.Context, key string) error {
	_, err := s.sbClient.RemoveFile(s.bucket, []string{key})
	return err
}
