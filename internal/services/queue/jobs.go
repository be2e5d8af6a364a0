package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pixstudio/photo-studio/internal/models"
)

const (
	jobKeyPrefix = "edit_job:"
	jobTTL       = 24 * time.Hour
)

// JobStore tracks edit job state in Redis so clients can poll for results.
type JobStore struct {
	client *redis.Client
}

func NewJobStore(client *redis.Client) *JobStore {
	return &JobStore{client: client}
}

func (s *JobStore) Save(ctx context.Context, job *models.EditJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := s.client.Set(ctx, jobKeyPrefix+job.ID, data, jobTTL).Err(); err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	return nil
}

// Get returns the job or nil when the ID is unknown (or expired).
func (s *JobStore) Get(ctx context.Context, id string) (*models.EditJob, error) {
	data, err := s.client.Get(ctx, jobKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	var job models.EditJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}
