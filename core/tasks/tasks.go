package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"gestimmo-api/core/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeMatchNotification is emitted when a perfect availability match schedules
// an intervention.
const TypeMatchNotification = "notification:match"

// MatchNotificationPayload carries the scheduled slot to notify participants.
type MatchNotificationPayload struct {
	InterventionID uuid.UUID   `json:"intervention_id"`
	UserIDs        []uuid.UUID `json:"user_ids"`
	Date           string      `json:"date"`
	StartTime      string      `json:"start_time"`
	EndTime        string      `json:"end_time"`
}

// Client wraps the asynq producer side.
type Client struct {
	inner *asynq.Client
}

// RedisOpt builds the asynq redis connection options from app config.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{inner: asynq.NewClient(opt)}
}

// EnqueueMatchNotification queues a match notification task.
func (c *Client) EnqueueMatchNotification(ctx context.Context, p MatchNotificationPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal match notification: %w", err)
	}

	task := asynq.NewTask(TypeMatchNotification, payload)
	if _, err := c.inner.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue match notification: %w", err)
	}
	return nil
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	return c.inner.Close()
}
