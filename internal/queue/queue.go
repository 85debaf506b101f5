package queue

import (
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// EnqueueCreateStrategy hands a freshly accepted strategy to the orchestrator.
func EnqueueCreateStrategy(asynqClient *asynq.Client, payload CreateStrategyPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeCreateStrategy, taskPayload)

	_, err = asynqClient.Enqueue(task)
	if err != nil {
		return err
	}

	slog.Info("strategy task enqueued", "strategy_id", payload.StrategyID)
	return nil
}

// EnqueuePublishPost fires one scheduled publish job into the worker pool.
func EnqueuePublishPost(asynqClient *asynq.Client, payload PublishPostPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishPost, taskPayload)

	_, err = asynqClient.Enqueue(task)
	if err != nil {
		return err
	}

	slog.Info("publish task enqueued", "post_id", payload.PostID)
	return nil
}
