package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/models"
)

// StartWorker registers a consumer that processes edit jobs until ctx is
// cancelled.
func (q *QueueService) StartWorker(ctx context.Context, workerID int) error {
	msgs, err := q.channel.Consume(
		queueName,                          // queue
		fmt.Sprintf("worker-%d", workerID), // consumer
		false,                              // auto-ack
		false,                              // exclusive
		false,                              // no-local
		false,                              // no-wait
		nil,                                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	q.logger.Info("Worker started", zap.Int("worker_id", workerID))

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.logger.Info("Worker stopping", zap.Int("worker_id", workerID))
				return
			case msg, ok := <-msgs:
				if !ok {
					q.logger.Warn("Message channel closed", zap.Int("worker_id", workerID))
					return
				}
				q.processMessage(ctx, msg, workerID)
			}
		}
	}()

	return nil
}

func (q *QueueService) processMessage(ctx context.Context, msg amqp.Delivery, workerID int) {
	var job models.EditJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		q.logger.Error("Failed to unmarshal job",
			zap.Error(err),
			zap.Int("worker_id", workerID))
		msg.Nack(false, false) // Don't requeue malformed messages
		return
	}

	q.logger.Info("Processing job",
		zap.String("job_id", job.ID),
		zap.String("kind", job.Kind),
		zap.Int("worker_id", workerID))

	job.Status = models.StatusProcessing
	q.saveJob(ctx, &job)

	resultURL, err := q.processJob(ctx, &job)
	if err != nil {
		// Single-shot: the model call is not retried, the failure message
		// is stored for the client verbatim.
		job.Status = models.StatusFailed
		job.Error = err.Error()
		q.logger.Error("Job processing failed",
			zap.String("job_id", job.ID),
			zap.Error(err))
	} else {
		job.Status = models.StatusCompleted
		job.ResultURL = resultURL
		q.logger.Info("Job completed",
			zap.String("job_id", job.ID),
			zap.String("result_url", resultURL))
	}
	q.saveJob(ctx, &job)

	if err := msg.Ack(false); err != nil {
		q.logger.Error("Failed to ack message",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}

func (q *QueueService) saveJob(ctx context.Context, job *models.EditJob) {
	if err := q.jobs.Save(ctx, job); err != nil {
		q.logger.Warn("Failed to record job state",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}
