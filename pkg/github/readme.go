package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrReadmeNotFound marks repositories where every README candidate
// returned 404. Callers can separate it from transport or server failures.
var ErrReadmeNotFound = errors.New("readme not found")

// readmeCandidates are tried in order against the raw content host.
var readmeCandidates = []string{"readme.md", "README.md", "Readme.md"}

// Readme fetches the repository's README text from the raw content host,
// trying candidate filenames in a fixed order. A 404 moves on to the next
// candidate; any other failure aborts the whole lookup immediately.
func (c *Client) Readme(ctx context.Context, repoURL string) (string, error) {
	owner, name, err := splitOwnerRepo(repoURL)
	if err != nil {
		return "", err
	}

	branch := c.DefaultBranch(ctx, repoURL)

	for _, candidate := range readmeCandidates {
		rawURL := fmt.Sprintf("%s/%s/%s/%s/%s", c.rawBase, owner, name, branch, candidate)
		text, status, ok := c.getText(ctx, rawURL)
		if ok {
			return text, nil
		}
		if status == http.StatusNotFound {
			continue
		}
		return "", fmt.Errorf("fetch readme for %s: status %d", repoURL, status)
	}

	return "", fmt.Errorf("readme for %s: %w", repoURL, ErrReadmeNotFound)
}

// splitOwnerRepo derives owner and repository name from the last two path
// segments of a repository URL.
func splitOwnerRepo(repoURL string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimRight(repoURL, "/"), "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("malformed repository url %q", repoURL)
	}
	owner = parts[len(parts)-2]
	name = parts[len(parts)-1]
	if owner == "" || name == "" {
		return "", "", fmt.Errorf("malformed repository url %q", repoURL)
	}
	return owner, name, nil
}
