package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/n23dcpt085-cyber/social-media-website/internal/models"
)

// HandlePublishPostTask publishes one queued post. Publish failures land on
// the record itself (status failed), so the task never errors for them and
// asynq never retries; the no-automatic-retry policy lives with the caller.
func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	post, err := q.ps.Publish(ctx, payload.PostID, payload.UserID)
	if err != nil {
		slog.Error("publish task failed to load post",
			"post_id", payload.PostID, "error", err)
		return err
	}

	if post.Status == models.PostStatusFailed {
		slog.Info("publish task completed with failed post",
			"post_id", post.ID, "platform", post.Platform, "message", post.ResponseMessage)
	} else {
		slog.Info("publish task completed",
			"post_id", post.ID, "platform", post.Platform, "status", post.Status)
	}
	return nil
}
