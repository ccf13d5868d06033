package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Task type names shared by the client, scheduler and worker.
const (
	TaskNotificationsSweep = "notifications:sweep"
)

// Client wraps asynq.Client for enqueuing tasks
type Client struct {
	client *asynq.Client
}

// NewClient creates a new queue client
func NewClient(redisAddr string, redisPassword string) *Client {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
	})

	return &Client{
		client: client,
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueSweep enqueues a notification sweep task for immediate
// processing, e.g. when an admin triggers an out-of-schedule run.
func (c *Client) EnqueueSweep(ctx context.Context) error {
	task := asynq.NewTask(TaskNotificationsSweep, nil)

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue sweep task: %w", err)
	}

	slog.InfoContext(ctx, "enqueued task",
		slog.String("id", info.ID),
		slog.String("type", info.Type),
		slog.String("queue", info.Queue))
	return nil
}
