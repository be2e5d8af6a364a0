package storage

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pixstudio/photo-studio/internal/models"
)

// GetCachedExport returns previously rendered export bytes, or nil on a
// cache miss.
func (s *StorageService) GetCachedExport(ctx context.Context, cacheKey string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

// CacheExport stores rendered export bytes for reuse.
func (s *StorageService) CacheExport(ctx context.Context, cacheKey string, data []byte) error {
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// GetCacheStats reports cache occupancy: total redis keys and how many of
// them are cached exports.
func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	exportKeys, err := s.redisClient.Keys(ctx, "export_cache:*").Result()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"db_keys":        dbSize,
		"cached_exports": len(exportKeys),
	}, nil
}

// ExportCacheKey derives a stable cache key from the source identity and
// the full settings record. The export pipeline is deterministic, so equal
// keys imply byte-identical output.
func ExportCacheKey(sourceID string, settings models.ExportSettings) string {
	hash := md5.New()
	hash.Write([]byte(sourceID))

	// Settings marshal with a fixed field order, keeping the digest stable.
	if encoded, err := json.Marshal(settings); err == nil {
		hash.Write(encoded)
	}

	return fmt.Sprintf("export_cache:%x", hash.Sum(nil))
}
