package transfer

import (
	"errors"
	"fmt"
	"time"
)

// Per-platform caps mirror what the platforms themselves enforce.
const (
	FacebookContentMaxLen  = 63206
	InstagramContentMaxLen = 2200
	CarouselMaxItems       = 10
)

// PostCreation is the request body for creating a post on any platform.
// ScheduledAt, when set, asks the platform to publish at that time natively;
// only Facebook supports this.
type PostCreation struct {
	Content     string   `json:"content"`
	MediaURLs   []string `json:"media_urls"`
	MediaType   string   `json:"media_type,omitempty"`
	ScheduledAt string   `json:"scheduled_at,omitempty"` // RFC 3339
}

// Validate enforces the request-shape rules for the given platform before
// anything is persisted or any remote call is made.
func (pc *PostCreation) Validate(platform string) error {
	if pc.Content == "" {
		return errors.New("content is required")
	}

	switch platform {
	case "facebook":
		if len(pc.Content) > FacebookContentMaxLen {
			return fmt.Errorf("content exceeds %d characters", FacebookContentMaxLen)
		}
	case "instagram":
		if len(pc.Content) > InstagramContentMaxLen {
			return fmt.Errorf("content exceeds %d characters", InstagramContentMaxLen)
		}
		if len(pc.MediaURLs) == 0 {
			return errors.New("media_urls is required for Instagram posts")
		}
		if len(pc.MediaURLs) > CarouselMaxItems {
			return fmt.Errorf("media_urls can have maximum %d items", CarouselMaxItems)
		}
		if pc.ScheduledAt != "" {
			return errors.New("Instagram does not support native scheduling")
		}
	case "tiktok":
		if len(pc.MediaURLs) == 0 {
			return errors.New("media_urls is required for TikTok posts")
		}
	default:
		return fmt.Errorf("unsupported platform: %s", platform)
	}

	if pc.ScheduledAt != "" {
		scheduledAt, err := time.Parse(time.RFC3339, pc.ScheduledAt)
		if err != nil {
			return fmt.Errorf("invalid scheduled_at format: %w", err)
		}
		if !scheduledAt.After(time.Now()) {
			return errors.New("scheduled_at must be in the future")
		}
	}

	return nil
}

// ScheduledTime returns the parsed scheduled_at, or nil when the post should
// publish immediately. Validate must have accepted the request first.
func (pc *PostCreation) ScheduledTime() *time.Time {
	if pc.ScheduledAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, pc.ScheduledAt)
	if err != nil {
		return nil
	}
	return &t
}
