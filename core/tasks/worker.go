package tasks

import (
	"context"
	"encoding/json"

	"gestimmo-api/core/logger"

	"github.com/hibiken/asynq"
)

// MatchNotificationHandler is implemented by the notification service.
type MatchNotificationHandler interface {
	HandleMatchNotification(ctx context.Context, p MatchNotificationPayload) error
}

// StartWorker runs the asynq consumer in the background. Notification
// delivery is best-effort; a worker that cannot start only logs.
func StartWorker(opt asynq.RedisClientOpt, handler MatchNotificationHandler) *asynq.Server {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMatchNotification, func(ctx context.Context, task *asynq.Task) error {
		var p MatchNotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("TasksWorker:MatchNotification:BadPayload", "error", err)
			return err
		}
		return handler.HandleMatchNotification(ctx, p)
	})

	go func() {
		logger.Info("TasksWorker:Start")
		if err := srv.Run(mux); err != nil {
			logger.Error("TasksWorker:Run", "error", err)
		}
	}()

	return srv
}
