package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	config "github.com/n23dcpt085-cyber/social-media-website/configs"
)

// FacebookPublisher posts to a Facebook Page through the Graph API. The whole
// flow is a single call: text goes to /feed, photos go to /feed with a url
// parameter (the dedicated /photos endpoint drops native scheduling support),
// videos go to /videos. Carousels are not supported; if more than one media
// URL is supplied only the first is used.
type FacebookPublisher struct {
	cfg    *config.Config
	client *http.Client
}

func NewFacebookPublisher(cfg *config.Config, client *http.Client) *FacebookPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &FacebookPublisher{cfg: cfg, client: client}
}

func (p *FacebookPublisher) Publish(ctx context.Context, req Request) (*Result, error) {
	if !p.cfg.ValidateFacebook() {
		return nil, &ConfigError{Message: "Facebook configuration is missing"}
	}

	var mediaURL string
	if len(req.MediaURLs) > 0 {
		mediaURL = req.MediaURLs[0]
		if len(req.MediaURLs) > 1 {
			slog.Info("facebook does not support carousels, using first media url only",
				"supplied", len(req.MediaURLs))
		}
	}

	switch {
	case mediaURL == "":
		return p.publishText(ctx, req)
	case IsVideoURL(mediaURL):
		return p.publishVideo(ctx, mediaURL, req)
	default:
		return p.publishPhoto(ctx, mediaURL, req)
	}
}

func (p *FacebookPublisher) publishText(ctx context.Context, req Request) (*Result, error) {
	endpoint := fmt.Sprintf("%s/%s/feed", p.cfg.FacebookGraphURL(), p.cfg.FacebookPageID)

	params := url.Values{}
	params.Set("message", req.Content)
	params.Set("access_token", p.cfg.FacebookAccessToken)
	if err := setPublishWindow(params, req); err != nil {
		return nil, err
	}

	postID, err := postGraphID(ctx, p.client, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("publish feed post: %w", err)
	}

	return &Result{ExternalID: postID, Detail: detail("Facebook post", req.Published)}, nil
}

func (p *FacebookPublisher) publishPhoto(ctx context.Context, mediaURL string, req Request) (*Result, error) {
	endpoint := fmt.Sprintf("%s/%s/feed", p.cfg.FacebookGraphURL(), p.cfg.FacebookPageID)

	params := url.Values{}
	params.Set("message", req.Content)
	params.Set("url", mediaURL)
	params.Set("access_token", p.cfg.FacebookAccessToken)
	if err := setPublishWindow(params, req); err != nil {
		return nil, err
	}

	postID, err := postGraphID(ctx, p.client, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("publish photo post: %w", err)
	}

	return &Result{ExternalID: postID, Detail: detail("Facebook photo", req.Published)}, nil
}

func (p *FacebookPublisher) publishVideo(ctx context.Context, mediaURL string, req Request) (*Result, error) {
	endpoint := fmt.Sprintf("%s/%s/videos", p.cfg.FacebookGraphURL(), p.cfg.FacebookPageID)

	params := url.Values{}
	params.Set("file_url", mediaURL)
	params.Set("description", req.Content)
	params.Set("access_token", p.cfg.FacebookAccessToken)
	if err := setPublishWindow(params, req); err != nil {
		return nil, err
	}

	videoID, err := postGraphID(ctx, p.client, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("publish video post: %w", err)
	}

	return &Result{ExternalID: videoID, Detail: detail("Facebook video", req.Published)}, nil
}

// setPublishWindow attaches the published flag and, for deferred posts, the
// scheduled_publish_time in unix seconds. A deferred post without a timestamp
// is rejected before any remote call.
func setPublishWindow(params url.Values, req Request) error {
	params.Set("published", strconv.FormatBool(req.Published))
	if req.Published {
		return nil
	}

	if req.ScheduledAt == nil {
		return &ValidationError{Message: "scheduled_publish_time is required when published is false"}
	}
	params.Set("scheduled_publish_time", strconv.FormatInt(req.ScheduledAt.Unix(), 10))
	return nil
}

func detail(subject string, published bool) string {
	if published {
		return subject + " published successfully"
	}
	return subject + " scheduled successfully"
}
