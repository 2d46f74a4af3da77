package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	config "github.com/n23dcpt085-cyber/social-media-website/configs"
	"github.com/n23dcpt085-cyber/social-media-website/internal/transfer"
)

// TiktokPublisher posts through the TikTok Content Posting API using its
// PULL_FROM_URL direct-post flow: query creator info, then initialize a video
// publish that tells TikTok to fetch the media itself. Without a configured
// access token the publish is simulated, which keeps the platform exercisable
// in environments that have no TikTok credentials.
type TiktokPublisher struct {
	cfg    *config.Config
	client *http.Client
}

func NewTiktokPublisher(cfg *config.Config, client *http.Client) *TiktokPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &TiktokPublisher{cfg: cfg, client: client}
}

func (p *TiktokPublisher) Publish(ctx context.Context, req Request) (*Result, error) {
	if p.cfg.TiktokAccessToken == "" {
		return p.simulate()
	}
	return p.directPost(ctx, req)
}

func (p *TiktokPublisher) simulate() (*Result, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate simulated id: %w", err)
	}
	return &Result{ExternalID: "tt_" + id, Detail: "Tiktok publish simulated"}, nil
}

func (p *TiktokPublisher) directPost(ctx context.Context, req Request) (*Result, error) {
	if len(req.MediaURLs) == 0 || !IsVideoURL(req.MediaURLs[0]) {
		return nil, &ValidationError{Message: "TikTok direct post requires a video URL"}
	}

	creator, err := p.queryCreatorInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("query creator info: %w", err)
	}

	privacy := "PUBLIC_TO_EVERYONE"
	if len(creator.PrivacyLevelOptions) > 0 {
		privacy = creator.PrivacyLevelOptions[0]
	}

	initReq := transfer.TiktokVideoInitRequest{
		PostInfo: transfer.TiktokVideoPostInfo{
			Title:        req.Content,
			PrivacyLevel: privacy,
		},
		SourceInfo: transfer.TiktokVideoSourceInfo{
			Source:   "PULL_FROM_URL",
			VideoURL: req.MediaURLs[0],
		},
	}

	var result transfer.TiktokUploadResponse
	if err := p.postJSON(ctx, "/v2/post/publish/video/init/", initReq, &result); err != nil {
		return nil, fmt.Errorf("initialize video publish: %w", err)
	}
	if result.Data.PublishID == "" {
		return nil, fmt.Errorf("initialize video publish: no publish_id returned (%s)", result.Error.Message)
	}

	return &Result{
		ExternalID: result.Data.PublishID,
		Detail:     "Tiktok video publish initiated",
	}, nil
}

func (p *TiktokPublisher) queryCreatorInfo(ctx context.Context) (*transfer.TiktokCreatorInfo, error) {
	var result transfer.TiktokCreatorInfoResponse
	if err := p.postJSON(ctx, "/v2/post/publish/creator_info/query/", nil, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (p *TiktokPublisher) postJSON(ctx context.Context, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("error marshalling payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TiktokAPIBaseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.TiktokAccessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(respBody)
		var envelope transfer.TiktokUploadResponse
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error.Message != "" {
			message = envelope.Error.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}
