package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
)

// fallbackBranch is used whenever the repository metadata lookup fails.
const fallbackBranch = "master"

// DefaultBranch resolves the repository's default branch. It fails soft:
// any lookup failure yields the literal fallback instead of an error.
func (c *Client) DefaultBranch(ctx context.Context, repoURL string) string {
	var meta struct {
		DefaultBranch string `json:"default_branch"`
	}
	if !c.getJSON(ctx, c.apiRepoURL(repoURL), &meta) {
		return fallbackBranch
	}
	if strings.TrimSpace(meta.DefaultBranch) == "" {
		return fallbackBranch
	}
	return meta.DefaultBranch
}

// contentItem is the subset of a contents API entry the collector reads.
type contentItem struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Type    string `json:"type"`
	HTMLURL string `json:"html_url"`
	GitURL  string `json:"git_url"`
}

// RepositoryFiles lists the top-level files of the repository at its default
// branch. Directories are excluded and not recursed into. The git object URL
// of each entry is carried as its last_updated reference.
func (c *Client) RepositoryFiles(ctx context.Context, repoURL string) ([]domain.FileEntry, error) {
	branch := c.DefaultBranch(ctx, repoURL)
	contentsURL := fmt.Sprintf("%s/contents?ref=%s", c.apiRepoURL(repoURL), branch)

	var items []contentItem
	if !c.getJSON(ctx, contentsURL, &items) {
		return nil, fmt.Errorf("fetch contents for %s", repoURL)
	}

	files := make([]domain.FileEntry, 0, len(items))
	for _, item := range items {
		if item.Type != "file" {
			continue
		}
		files = append(files, domain.FileEntry{
			Name:        item.Name,
			Path:        item.Path,
			URL:         item.HTMLURL,
			LastUpdated: item.GitURL,
		})
	}
	return files, nil
}
