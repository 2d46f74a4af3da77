package queue

import (
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// EnqueuePost hands a queued post to the worker pool. The task runs as soon
// as a worker picks it up; time-based deferral is never decided here, it
// belongs to the platforms' native schedulers.
func EnqueuePost(asynqClient *asynq.Client, payload PublishPostPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishPost, taskPayload, asynq.MaxRetry(0))

	_, err = asynqClient.Enqueue(task)
	if err != nil {
		return err
	}

	slog.Info("publish task enqueued", "post_id", payload.PostID)
	return nil
}
