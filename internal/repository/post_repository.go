package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/n23dcpt085-cyber/social-media-website/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Post, error)
	GetByUserID(ctx context.Context, userID int64, platform string) ([]*models.Post, error)
	UpdateResult(ctx context.Context, postID int64, status, externalID, responseMessage string, publishedAt *time.Time) error
	UpdateFailure(ctx context.Context, postID int64, responseMessage string) error
	CountStaleQueued(ctx context.Context, olderThan time.Duration) (int64, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, platform, content, media_urls, media_type, status, external_id, scheduled_at, published_at, response_message, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, platform, content, media_urls, media_type, status, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.UserID, post.Platform, post.Content, pq.Array(post.MediaURLs),
		post.MediaType, post.Status, post.ScheduledAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id, userID int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID int64, platform string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 AND platform = $2 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, platform)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) UpdateResult(ctx context.Context, postID int64, status, externalID, responseMessage string, publishedAt *time.Time) error {
	query := `
		UPDATE posts
		SET status = $1,
			external_id = $2,
			response_message = $3,
			published_at = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, status, externalID, responseMessage, publishedAt, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateFailure(ctx context.Context, postID int64, responseMessage string) error {
	query := `
		UPDATE posts
		SET status = $1,
			response_message = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusFailed, responseMessage, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// CountStaleQueued reports posts stuck in the queued state, typically left
// behind by a caller-level timeout that aborted a publish mid-flight. It is
// read-only; recovery is the caller's decision.
func (r *postRepository) CountStaleQueued(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `SELECT COUNT(*) FROM posts WHERE status = $1 AND created_at < $2`

	var count int64
	err := r.db.QueryRowContext(ctx, query, models.PostStatusQueued, time.Now().Add(-olderThan)).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var externalID, responseMessage sql.NullString
	var scheduledAt, publishedAt sql.NullTime

	err := row.Scan(&post.ID, &post.UserID, &post.Platform, &post.Content,
		pq.Array(&post.MediaURLs), &post.MediaType, &post.Status, &externalID,
		&scheduledAt, &publishedAt, &responseMessage, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post.ExternalID = externalID.String
	post.ResponseMessage = responseMessage.String
	if scheduledAt.Valid {
		post.ScheduledAt = &scheduledAt.Time
	}
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}
	return &post, nil
}
