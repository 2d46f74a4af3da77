package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	config "github.com/n23dcpt085-cyber/social-media-website/configs"
	"github.com/n23dcpt085-cyber/social-media-website/internal/transfer"
)

func TestTiktokSimulatedWithoutToken(t *testing.T) {
	srv, requests := newGraphServer(t, func(r recordedRequest) (int, string) {
		return 200, `{}`
	})

	cfg := &config.Config{TiktokAPIBaseURL: srv.URL}
	p := NewTiktokPublisher(cfg, srv.Client())

	result, err := p.Publish(context.Background(), Request{
		Content:   "Dance",
		MediaURLs: []string{"https://cdn.example.com/clip.mp4"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if !strings.HasPrefix(result.ExternalID, "tt_") {
		t.Errorf("ExternalID = %q, want tt_ prefix", result.ExternalID)
	}
	if result.Detail != "Tiktok publish simulated" {
		t.Errorf("Detail = %q", result.Detail)
	}
	if len(*requests) != 0 {
		t.Errorf("request count = %d, want 0 in simulated mode", len(*requests))
	}
}

func TestTiktokSimulatedIDsAreUnique(t *testing.T) {
	p := NewTiktokPublisher(&config.Config{}, nil)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		result, err := p.Publish(context.Background(), Request{Content: "x"})
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if seen[result.ExternalID] {
			t.Fatalf("duplicate simulated id %q", result.ExternalID)
		}
		seen[result.ExternalID] = true
	}
}

func TestTiktokDirectPost(t *testing.T) {
	var initReq transfer.TiktokVideoInitRequest
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v2/post/publish/creator_info/query/":
			authHeader = r.Header.Get("Authorization")
			io.WriteString(w, `{"data":{"creator_username":"maker","privacy_level_options":["SELF_ONLY","PUBLIC_TO_EVERYONE"]},"error":{"code":"ok"}}`)
		case "/v2/post/publish/video/init/":
			json.NewDecoder(r.Body).Decode(&initReq)
			io.WriteString(w, `{"data":{"publish_id":"v_pub_1"},"error":{"code":"ok"}}`)
		default:
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	cfg := &config.Config{TiktokAccessToken: "tt-token", TiktokAPIBaseURL: srv.URL}
	p := NewTiktokPublisher(cfg, srv.Client())

	result, err := p.Publish(context.Background(), Request{
		Content:   "Dance",
		MediaURLs: []string{"https://cdn.example.com/clip.mp4"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if result.ExternalID != "v_pub_1" {
		t.Errorf("ExternalID = %q", result.ExternalID)
	}
	if result.Detail != "Tiktok video publish initiated" {
		t.Errorf("Detail = %q", result.Detail)
	}
	if authHeader != "Bearer tt-token" {
		t.Errorf("Authorization = %q", authHeader)
	}
	if initReq.PostInfo.Title != "Dance" {
		t.Errorf("title = %q", initReq.PostInfo.Title)
	}
	// The creator's first offered privacy level wins over the default.
	if initReq.PostInfo.PrivacyLevel != "SELF_ONLY" {
		t.Errorf("privacy_level = %q", initReq.PostInfo.PrivacyLevel)
	}
	if initReq.SourceInfo.Source != "PULL_FROM_URL" {
		t.Errorf("source = %q", initReq.SourceInfo.Source)
	}
	if initReq.SourceInfo.VideoURL != "https://cdn.example.com/clip.mp4" {
		t.Errorf("video_url = %q", initReq.SourceInfo.VideoURL)
	}
}

func TestTiktokDirectPostRequiresVideo(t *testing.T) {
	cfg := &config.Config{TiktokAccessToken: "tt-token", TiktokAPIBaseURL: "http://unused.invalid"}
	p := NewTiktokPublisher(cfg, nil)

	for _, urls := range [][]string{nil, {"https://cdn.example.com/pic.jpg"}} {
		_, err := p.Publish(context.Background(), Request{Content: "x", MediaURLs: urls})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("media %v: error = %v, want ValidationError", urls, err)
		}
	}
}

func TestTiktokAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"code":"access_token_invalid","message":"The access token is invalid"}}`)
	}))
	defer srv.Close()

	cfg := &config.Config{TiktokAccessToken: "bad", TiktokAPIBaseURL: srv.URL}
	p := NewTiktokPublisher(cfg, srv.Client())

	_, err := p.Publish(context.Background(), Request{
		Content:   "x",
		MediaURLs: []string{"https://cdn.example.com/clip.mp4"},
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "The access token is invalid" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
