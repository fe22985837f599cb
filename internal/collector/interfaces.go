package collector

import (
	"context"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/github"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/sinks"
)

// RepositoryAPI is the slice of the GitHub client the collector depends on.
type RepositoryAPI interface {
	SearchRepositories(ctx context.Context, query string, opts github.SearchOptions) []domain.RepositorySummary
	RepositoryFiles(ctx context.Context, repoURL string) ([]domain.FileEntry, error)
	Readme(ctx context.Context, repoURL string) (string, error)
}

// DescriptionScraper fills missing record descriptions from repository pages.
type DescriptionScraper interface {
	Enrich(ctx context.Context, records []domain.RepositoryRecord) []domain.RepositoryRecord
}

// RecordPublisher fans collected records out to downstream sinks.
type RecordPublisher interface {
	Publish(ctx context.Context, evt sinks.Event) (int, error)
}
