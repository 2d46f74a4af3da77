package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/n23dcpt085-cyber/social-media-website/internal/transfer"
)

// callGraph performs one Graph API call with form-encoded query parameters
// and returns the raw response body. Non-2xx responses are translated into an
// *APIError carrying the embedded error message when the standard envelope is
// present, else the raw body.
func callGraph(ctx context.Context, client *http.Client, method, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := strings.TrimSpace(string(body))
		var envelope transfer.GraphErrorResponse
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
			message = envelope.Error.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	return body, nil
}

// postGraphID posts to a Graph endpoint whose success payload is `{"id": ...}`.
func postGraphID(ctx context.Context, client *http.Client, endpoint string, params url.Values) (string, error) {
	body, err := callGraph(ctx, client, http.MethodPost, endpoint, params)
	if err != nil {
		return "", err
	}

	var result transfer.GraphIDResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("no id returned in response: %s", body)
	}

	return result.ID, nil
}
