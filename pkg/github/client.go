package github

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chainscout-hq/crypto-repo-collector/internal/logger"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/httpclient"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultRawBaseURL = "https://raw.githubusercontent.com"
)

// HTTPClient aliases the shared httpclient.Client interface for clarity within this package.
type HTTPClient = httpclient.Client

// Client issues authenticated GET requests against the GitHub REST API and
// the raw content host. Failures are reported through the logger and
// surfaced as soft outcomes; no request is retried.
type Client struct {
	http    HTTPClient
	token   string
	apiBase string
	rawBase string
}

// NewClient builds an API client around the given transport. A nil transport
// falls back to the default resty client.
func NewClient(client HTTPClient, token string) *Client {
	if client == nil {
		client = httpclient.NewDefaultClient()
	}
	return &Client{
		http:    client,
		token:   strings.TrimSpace(token),
		apiBase: defaultAPIBaseURL,
		rawBase: defaultRawBaseURL,
	}
}

// headers returns the authorization header sent with every request,
// the raw content host included.
func (c *Client) headers() map[string]string {
	if c.token == "" {
		return nil
	}
	return map[string]string{"Authorization": "token " + c.token}
}

// get issues a GET and returns the body with the response status. ok is true
// only for HTTP 200; every other outcome is logged here so callers can stay
// on their happy path.
func (c *Client) get(ctx context.Context, url string) (body []byte, status int, ok bool) {
	logger.DebugObj("github request", "url", url)

	resp, err := c.http.Get(ctx, url, c.headers())
	if err != nil {
		logger.WarnObj("github request failed", "github_error", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return nil, 0, false
	}

	if resp.StatusCode() != http.StatusOK {
		logger.WarnObj("github request returned non-200", "github_error", map[string]any{
			"url":    url,
			"status": resp.StatusCode(),
			"body":   responseSnippet(resp.Body()),
		})
		return nil, resp.StatusCode(), false
	}

	return resp.Body(), resp.StatusCode(), true
}

// getJSON fetches url and decodes the body into out. Returns false on
// transport failure, non-200 status, or a malformed body.
func (c *Client) getJSON(ctx context.Context, url string, out any) bool {
	body, _, ok := c.get(ctx, url)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		logger.WarnObj("github response decode failed", "github_error", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// getText fetches url and returns the raw body text alongside the status.
func (c *Client) getText(ctx context.Context, url string) (string, int, bool) {
	body, status, ok := c.get(ctx, url)
	if !ok {
		return "", status, false
	}
	return string(body), status, true
}

// apiRepoURL rewrites a repository's user-facing URL into its API URL.
func (c *Client) apiRepoURL(repoURL string) string {
	return strings.Replace(repoURL, "https://github.com", c.apiBase+"/repos", 1)
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
