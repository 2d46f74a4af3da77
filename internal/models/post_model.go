package models

import "time"

type Post struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	Platform        string     `db:"platform" json:"platform"`
	Content         string     `db:"content" json:"content"`
	MediaURLs       []string   `db:"media_urls" json:"media_urls"`
	MediaType       string     `db:"media_type" json:"media_type"`
	Status          string     `db:"status" json:"status"` // queued, scheduled, published, failed
	ExternalID      string     `db:"external_id" json:"external_id"`
	ScheduledAt     *time.Time `db:"scheduled_at" json:"scheduled_at"`
	PublishedAt     *time.Time `db:"published_at" json:"published_at"`
	ResponseMessage string     `db:"response_message" json:"response_message"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusQueued    = "queued"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTiktok    = "tiktok"
)
