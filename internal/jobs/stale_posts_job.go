package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/n23dcpt085-cyber/social-media-website/internal/repository"
)

// StaleQueuedJob periodically reports posts stuck in the queued state,
// usually the residue of a caller timeout that aborted a publish. It only
// observes; queued posts are never auto-recovered, the caller decides whether
// to mark them failed or resubmit.
type StaleQueuedJob struct {
	pr        repository.PostRepository
	olderThan time.Duration
}

func NewStaleQueuedJob(pr repository.PostRepository, olderThan time.Duration) *StaleQueuedJob {
	if olderThan <= 0 {
		olderThan = 15 * time.Minute
	}
	return &StaleQueuedJob{pr: pr, olderThan: olderThan}
}

func (j *StaleQueuedJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	count, err := j.pr.CountStaleQueued(ctx, j.olderThan)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	if count > 0 {
		slog.Warn("posts stuck in queued state", "count", count, "older_than", j.olderThan)
	}
}
