package github

import (
	"context"
	"errors"
	"testing"

	"github.com/chainscout-hq/crypto-repo-collector/pkg/httpclient"
)

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.statusCode }

// mockHTTPClient serves canned responses per URL and records every request.
// URLs without a canned response answer 404, matching how the raw content
// host reports missing files.
type mockHTTPClient struct {
	t         *testing.T
	responses map[string]mockResponse
	calls     []string
	wantAuth  string
}

func (m *mockHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	m.calls = append(m.calls, url)
	if m.wantAuth != "" {
		if got := headers["Authorization"]; got != m.wantAuth {
			m.t.Fatalf("expected Authorization %q, got %q", m.wantAuth, got)
		}
	}
	if resp, ok := m.responses[url]; ok {
		return resp, nil
	}
	return mockResponse{body: []byte("Not Found"), statusCode: 404}, nil
}

type errHTTPClient struct{}

func (errHTTPClient) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	return nil, errors.New("connection refused")
}

func TestClientSendsAuthorizationHeader(t *testing.T) {
	mock := &mockHTTPClient{
		t: t,
		responses: map[string]mockResponse{
			"https://api.github.com/repos/alice/chain": {
				body:       []byte(`{"default_branch": "main"}`),
				statusCode: 200,
			},
		},
		wantAuth: "token ghp_secret",
	}

	client := NewClient(mock, "ghp_secret")
	if branch := client.DefaultBranch(context.Background(), "https://github.com/alice/chain"); branch != "main" {
		t.Fatalf("expected main, got %q", branch)
	}
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	client := NewClient(nil, "")
	if headers := client.headers(); headers != nil {
		t.Fatalf("expected nil headers without token, got %v", headers)
	}
}
