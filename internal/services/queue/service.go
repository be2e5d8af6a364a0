// Package queue runs generation and enhancement jobs through RabbitMQ.
// The remote model call is the only slow, failure-prone step in the
// system, so it is the only one that goes through a queue; exports render
// synchronously in the request path.
package queue

import (
	"context"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/services/genai"
	"github.com/pixstudio/photo-studio/internal/services/storage"
)

const queueName = "photo_edit_jobs"

// Generator is the slice of the genai client the worker needs.
type Generator interface {
	Generate(ctx context.Context, src genai.SourceImage, prompt string) (*genai.EditedImage, error)
	Enhance(ctx context.Context, src genai.SourceImage) (*genai.EditedImage, error)
}

type QueueService struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	logger    *zap.Logger
	generator Generator
	storage   *storage.StorageService
	jobs      *JobStore
}

func NewQueueService(
	rabbitmqURL string,
	generator Generator,
	storage *storage.StorageService,
	jobs *JobStore,
	logger *zap.Logger,
) (*QueueService, error) {
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &QueueService{
		conn:      conn,
		channel:   channel,
		logger:    logger,
		generator: generator,
		storage:   storage,
		jobs:      jobs,
	}, nil
}

// Jobs exposes the job store for status polling.
func (q *QueueService) Jobs() *JobStore {
	return q.jobs
}

// Close closes the queue connection.
func (q *QueueService) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
	return nil
}
