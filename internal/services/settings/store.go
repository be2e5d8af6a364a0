// Package settings persists per-user export settings in Redis. Loading is
// forgiving: anything short of a fully valid record falls back to the
// hardcoded defaults instead of surfacing an error.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/models"
)

const keyPrefix = "export_settings:"

type Store struct {
	client *redis.Client
	logger *zap.Logger
}

func NewStore(client *redis.Client, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
	}
}

// Load returns the persisted settings for a user, or the defaults when no
// record exists, the record does not parse, or the parsed record fails
// validation. Missing fields inherit their default before the record is
// judged; acceptance is all-or-nothing after that.
func (s *Store) Load(ctx context.Context, userID string) models.ExportSettings {
	data, err := s.client.Get(ctx, settingsKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Failed to load settings, using defaults",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return models.DefaultExportSettings()
	}

	loaded := models.DefaultExportSettings()
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("Discarding unparseable settings record",
			zap.String("user_id", userID),
			zap.Error(err))
		return models.DefaultExportSettings()
	}

	if err := loaded.Validate(); err != nil {
		s.logger.Warn("Discarding invalid settings record",
			zap.String("user_id", userID),
			zap.Error(err))
		return models.DefaultExportSettings()
	}

	return loaded
}

// Save persists a settings record. Invalid records are rejected; storage
// failures are reported to the caller, which treats them as non-fatal.
func (s *Store) Save(ctx context.Context, userID string, settings models.ExportSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid settings: %w", err)
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := s.client.Set(ctx, settingsKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

func settingsKey(userID string) string {
	return keyPrefix + userID
}
