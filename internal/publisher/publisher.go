package publisher

import (
	"context"
	"time"
)

// Media types as the Graph API spells them. REELS and STORIES are only ever
// selected through an explicit request hint; a URL extension alone cannot
// distinguish them from a plain video.
const (
	MediaTypeImage    = "IMAGE"
	MediaTypeVideo    = "VIDEO"
	MediaTypeReels    = "REELS"
	MediaTypeStories  = "STORIES"
	MediaTypeCarousel = "CAROUSEL"
	MediaTypeText     = "TEXT"
)

// Request is one validated publish request. MediaURLs keeps caller order;
// platforms that cannot represent every entry degrade in documented ways
// rather than reordering.
type Request struct {
	Content     string
	MediaURLs   []string
	MediaType   string // optional hint, wins over URL inference
	Published   bool   // false defers publishing to the platform scheduler
	ScheduledAt *time.Time
}

// Result is produced exactly once per successful publish attempt.
type Result struct {
	ExternalID string
	Detail     string
}

// Publisher is implemented once per platform. Publish performs zero or more
// outbound API calls; any failure surfaces as one of the typed errors in this
// package, wrapped with enough context to identify the failing step.
type Publisher interface {
	Publish(ctx context.Context, req Request) (*Result, error)
}
