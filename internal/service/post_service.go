package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/n23dcpt085-cyber/social-media-website/internal/models"
	"github.com/n23dcpt085-cyber/social-media-website/internal/publisher"
	"github.com/n23dcpt085-cyber/social-media-website/internal/repository"
	"github.com/n23dcpt085-cyber/social-media-website/internal/transfer"
)

type PostService interface {
	Upload(ctx context.Context, userID int64, platform string, pc *transfer.PostCreation) (*models.Post, error)
	CreateQueued(ctx context.Context, userID int64, platform string, pc *transfer.PostCreation) (*models.Post, error)
	Publish(ctx context.Context, postID, userID int64) (*models.Post, error)
	List(ctx context.Context, userID int64, platform string) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error)
}

type postService struct {
	pr         repository.PostRepository
	ph         repository.PostingHistoryRepository
	publishers map[string]publisher.Publisher
}

func NewPostService(
	pr repository.PostRepository,
	ph repository.PostingHistoryRepository,
	publishers map[string]publisher.Publisher) PostService {
	return &postService{
		pr:         pr,
		ph:         ph,
		publishers: publishers,
	}
}

// Upload persists the post in the queued state, hands it to the matching
// platform publisher and reconciles the final status. A publisher failure is
// a normal outcome here: the returned record carries status failed and the
// error message, and no error is propagated. The record is never retried;
// resubmitting creates a fresh one.
func (s *postService) Upload(ctx context.Context, userID int64, platform string, pc *transfer.PostCreation) (*models.Post, error) {
	post, err := s.CreateQueued(ctx, userID, platform, pc)
	if err != nil {
		return nil, err
	}
	return s.publishRecord(ctx, post), nil
}

func (s *postService) CreateQueued(ctx context.Context, userID int64, platform string, pc *transfer.PostCreation) (*models.Post, error) {
	if pc == nil {
		return nil, errors.New("post creation data is nil")
	}
	if _, ok := s.publishers[platform]; !ok {
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
	if err := pc.Validate(platform); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	post := &models.Post{
		UserID:      userID,
		Platform:    platform,
		Content:     pc.Content,
		MediaURLs:   pc.MediaURLs,
		MediaType:   resolveRecordMediaType(platform, pc),
		Status:      models.PostStatusQueued,
		ScheduledAt: pc.ScheduledTime(),
	}

	postID, err := s.pr.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	post.ID = postID
	post.CreatedAt = time.Now()

	return post, nil
}

// Publish runs the publisher for an already persisted queued post. It backs
// the async submission path; posts that already reached a terminal state are
// returned untouched.
func (s *postService) Publish(ctx context.Context, postID, userID int64) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %d not found", postID)
	}
	if post.Status != models.PostStatusQueued {
		slog.Info("post already in terminal state, skipping publish",
			"post_id", post.ID, "status", post.Status)
		return post, nil
	}

	return s.publishRecord(ctx, post), nil
}

func (s *postService) publishRecord(ctx context.Context, post *models.Post) *models.Post {
	pub := s.publishers[post.Platform]

	// Only Facebook can defer publishing to the platform's own scheduler.
	deferred := post.Platform == models.PlatformFacebook && post.ScheduledAt != nil

	result, err := pub.Publish(ctx, publisher.Request{
		Content:     post.Content,
		MediaURLs:   post.MediaURLs,
		MediaType:   post.MediaType,
		Published:   !deferred,
		ScheduledAt: post.ScheduledAt,
	})
	if err != nil {
		// A caller-level timeout aborts the whole attempt and leaves the
		// record queued; marking it failed is a compensating update the
		// caller may choose to make.
		if ctx.Err() != nil {
			slog.Warn("publish aborted by caller, leaving post queued",
				"platform", post.Platform, "post_id", post.ID, "error", err)
			return post
		}

		slog.Error("publish failed",
			"platform", post.Platform, "post_id", post.ID, "error", err)
		if updateErr := s.pr.UpdateFailure(ctx, post.ID, err.Error()); updateErr != nil {
			slog.Error("failed to record publish failure", "post_id", post.ID, "error", updateErr)
		}
		s.recordHistory(ctx, post, "", err.Error())

		post.Status = models.PostStatusFailed
		post.ResponseMessage = err.Error()
		return post
	}

	status := models.PostStatusPublished
	var publishedAt *time.Time
	if deferred {
		status = models.PostStatusScheduled
	} else {
		now := time.Now()
		publishedAt = &now
	}

	if err := s.pr.UpdateResult(ctx, post.ID, status, result.ExternalID, result.Detail, publishedAt); err != nil {
		slog.Error("failed to record publish result", "post_id", post.ID, "error", err)
	}
	s.recordHistory(ctx, post, result.ExternalID, "")

	post.Status = status
	post.ExternalID = result.ExternalID
	post.ResponseMessage = result.Detail
	post.PublishedAt = publishedAt
	return post
}

func (s *postService) recordHistory(ctx context.Context, post *models.Post, externalID, errorMessage string) {
	_, err := s.ph.Create(ctx, &models.PostingHistory{
		UserID:       post.UserID,
		PostID:       post.ID,
		Platform:     post.Platform,
		ExternalID:   externalID,
		ErrorMessage: errorMessage,
	})
	if err != nil {
		slog.Error("failed to save posting history", "post_id", post.ID, "error", err)
	}
}

func (s *postService) List(ctx context.Context, userID int64, platform string) ([]*models.Post, error) {
	posts, err := s.pr.GetByUserID(ctx, userID, platform)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	if userID == 0 {
		err := errors.New("user is not valid")
		slog.Info(err.Error())
		return nil, err
	}
	if postID == 0 {
		err := errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting post info: %w", err)
	}
	if post == nil {
		err = errors.New("post doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

// resolveRecordMediaType derives the media type stored on the record; the
// publishers re-derive their own wire-level type from the same classifier so
// the two can never diverge.
func resolveRecordMediaType(platform string, pc *transfer.PostCreation) string {
	switch platform {
	case models.PlatformFacebook:
		if len(pc.MediaURLs) == 0 {
			return publisher.MediaTypeText
		}
		switch pc.MediaType {
		case "PHOTO", publisher.MediaTypeImage:
			return publisher.MediaTypeImage
		case publisher.MediaTypeVideo:
			return publisher.MediaTypeVideo
		}
		if publisher.IsVideoURL(pc.MediaURLs[0]) {
			return publisher.MediaTypeVideo
		}
		return publisher.MediaTypeImage
	case models.PlatformInstagram:
		if len(pc.MediaURLs) > 1 {
			return publisher.MediaTypeCarousel
		}
		switch pc.MediaType {
		case publisher.MediaTypeImage, publisher.MediaTypeVideo,
			publisher.MediaTypeReels, publisher.MediaTypeStories:
			return pc.MediaType
		}
		if len(pc.MediaURLs) > 0 && publisher.IsVideoURL(pc.MediaURLs[0]) {
			return publisher.MediaTypeVideo
		}
		return publisher.MediaTypeImage
	case models.PlatformTiktok:
		return publisher.MediaTypeVideo
	}
	return ""
}
