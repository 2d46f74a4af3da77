package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	config "github.com/n23dcpt085-cyber/social-media-website/configs"
	"github.com/n23dcpt085-cyber/social-media-website/internal/transfer"
)

const (
	// Meta documents 60 seconds as the minimum interval between container
	// status checks; polling tighter risks rate limiting.
	containerPollInterval = 60 * time.Second
	containerPollAttempts = 5

	carouselMaxItems = 10
)

// Container readiness states reported by the status_code field.
const (
	containerStatusInProgress = "IN_PROGRESS"
	containerStatusFinished   = "FINISHED"
	containerStatusError      = "ERROR"
	containerStatusExpired    = "EXPIRED"
)

// InstagramPublisher drives the Graph API container workflow: create one
// container per media item, wait for asynchronous processing to finish, then
// publish. Carousels add a parent container referencing the item containers.
type InstagramPublisher struct {
	cfg    *config.Config
	client *http.Client

	// sleep is the wait between readiness polls; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewInstagramPublisher(cfg *config.Config, client *http.Client) *InstagramPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &InstagramPublisher{cfg: cfg, client: client, sleep: sleepContext}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *InstagramPublisher) Publish(ctx context.Context, req Request) (*Result, error) {
	if !p.cfg.ValidateInstagram() {
		var missing []string
		if p.cfg.InstagramToken() == "" {
			missing = append(missing, "access token")
		}
		if p.cfg.InstagramUserID == "" {
			missing = append(missing, "Instagram User ID")
		}
		return nil, &ConfigError{Message: fmt.Sprintf(
			"Instagram configuration is missing: %s. "+
				"Note: When using Facebook Login, Instagram uses the Facebook Page access token. "+
				"Set INSTAGRAM_USER_ID to the Instagram Business Account ID connected to your Facebook Page.",
			strings.Join(missing, ", "))}
	}

	if len(req.MediaURLs) > 1 {
		return p.publishCarousel(ctx, req)
	}
	return p.publishSingleMedia(ctx, req)
}

func (p *InstagramPublisher) publishSingleMedia(ctx context.Context, req Request) (*Result, error) {
	if len(req.MediaURLs) == 0 {
		return nil, &ValidationError{Message: "Media URL is required for Instagram posts"}
	}

	mediaURL := req.MediaURLs[0]
	mediaType := resolveMediaType(mediaURL, req.MediaType)

	containerID, err := p.createContainer(ctx, mediaURL, req.Content, mediaType, false)
	if err != nil {
		return nil, fmt.Errorf("create media container: %w", err)
	}

	// Image and story containers are ready synchronously; video processing
	// is asynchronous and must be polled.
	if mediaType == MediaTypeVideo || mediaType == MediaTypeReels {
		if err := p.waitForContainer(ctx, containerID); err != nil {
			return nil, err
		}
	}

	mediaID, err := p.publishContainer(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("publish container %s: %w", containerID, err)
	}

	return &Result{
		ExternalID: mediaID,
		Detail:     fmt.Sprintf("Instagram %s published successfully", strings.ToLower(mediaType)),
	}, nil
}

func (p *InstagramPublisher) publishCarousel(ctx context.Context, req Request) (*Result, error) {
	if len(req.MediaURLs) == 0 {
		return nil, &ValidationError{Message: "Media URLs array is required for carousel posts"}
	}
	if len(req.MediaURLs) > carouselMaxItems {
		return nil, &ValidationError{Message: fmt.Sprintf("Carousel posts can have maximum %d items", carouselMaxItems)}
	}

	// Item containers keep the request order; the parent references them in
	// the same order. Items never carry the caption, only the parent does.
	containerIDs := make([]string, len(req.MediaURLs))
	for i, mediaURL := range req.MediaURLs {
		mediaType := MediaTypeImage
		if IsVideoURL(mediaURL) {
			mediaType = MediaTypeVideo
		}

		containerID, err := p.createContainer(ctx, mediaURL, "", mediaType, true)
		if err != nil {
			return nil, fmt.Errorf("create carousel item container %d: %w", i, err)
		}
		containerIDs[i] = containerID
	}

	if err := p.waitForContainers(ctx, containerIDs); err != nil {
		return nil, err
	}

	parentID, err := p.createCarouselContainer(ctx, containerIDs, req.Content)
	if err != nil {
		return nil, fmt.Errorf("create carousel container: %w", err)
	}

	mediaID, err := p.publishContainer(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("publish carousel container %s: %w", parentID, err)
	}

	return &Result{ExternalID: mediaID, Detail: "Instagram carousel published successfully"}, nil
}

func (p *InstagramPublisher) createContainer(ctx context.Context, mediaURL, caption, mediaType string, isCarouselItem bool) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", p.cfg.InstagramAPIURL(), p.cfg.InstagramUserID)

	params := url.Values{}
	params.Set("access_token", p.cfg.InstagramToken())
	params.Set("media_type", mediaType)
	if isCarouselItem {
		params.Set("is_carousel_item", "true")
	}

	switch mediaType {
	case MediaTypeVideo, MediaTypeReels:
		params.Set("video_url", mediaURL)
	default:
		params.Set("image_url", mediaURL)
	}

	if caption != "" {
		params.Set("caption", caption)
	}

	return postGraphID(ctx, p.client, endpoint, params)
}

func (p *InstagramPublisher) createCarouselContainer(ctx context.Context, containerIDs []string, caption string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", p.cfg.InstagramAPIURL(), p.cfg.InstagramUserID)

	params := url.Values{}
	params.Set("access_token", p.cfg.InstagramToken())
	params.Set("media_type", MediaTypeCarousel)
	params.Set("children", strings.Join(containerIDs, ","))
	params.Set("caption", caption)

	return postGraphID(ctx, p.client, endpoint, params)
}

func (p *InstagramPublisher) publishContainer(ctx context.Context, containerID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media_publish", p.cfg.InstagramAPIURL(), p.cfg.InstagramUserID)

	params := url.Values{}
	params.Set("access_token", p.cfg.InstagramToken())
	params.Set("creation_id", containerID)

	return postGraphID(ctx, p.client, endpoint, params)
}

// waitForContainers polls every container concurrently so an N-item carousel
// waits ~one processing window, not N of them. It waits for all polls to
// settle and reports the first failure in item order.
func (p *InstagramPublisher) waitForContainers(ctx context.Context, containerIDs []string) error {
	var wg sync.WaitGroup
	errs := make([]error, len(containerIDs))

	for i, containerID := range containerIDs {
		wg.Add(1)
		go func(i int, containerID string) {
			defer wg.Done()
			errs[i] = p.waitForContainer(ctx, containerID)
		}(i, containerID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *InstagramPublisher) waitForContainer(ctx context.Context, containerID string) error {
	for attempt := 0; attempt < containerPollAttempts; attempt++ {
		status, err := p.checkContainerStatus(ctx, containerID)
		if err != nil {
			return fmt.Errorf("check container %s status: %w", containerID, err)
		}

		switch status {
		case containerStatusFinished:
			return nil
		case containerStatusError, containerStatusExpired:
			return &ContainerError{ContainerID: containerID, Status: status}
		}

		if attempt < containerPollAttempts-1 {
			if err := p.sleep(ctx, containerPollInterval); err != nil {
				return err
			}
		}
	}

	return &TimeoutError{ContainerID: containerID, Attempts: containerPollAttempts}
}

func (p *InstagramPublisher) checkContainerStatus(ctx context.Context, containerID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s", p.cfg.InstagramAPIURL(), containerID)

	params := url.Values{}
	params.Set("access_token", p.cfg.InstagramToken())
	params.Set("fields", "status_code")

	body, err := callGraph(ctx, p.client, http.MethodGet, endpoint, params)
	if err != nil {
		return "", err
	}

	var result transfer.GraphContainerStatus
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	return result.StatusCode, nil
}

// resolveMediaType applies an explicit hint when present, otherwise infers
// from the URL extension. REELS and STORIES are never inferred.
func resolveMediaType(mediaURL, hint string) string {
	switch hint {
	case MediaTypeImage, MediaTypeVideo, MediaTypeReels, MediaTypeStories:
		return hint
	}
	if IsVideoURL(mediaURL) {
		return MediaTypeVideo
	}
	return MediaTypeImage
}
