package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
	"github.com/chainscout-hq/crypto-repo-collector/internal/logger"
	"github.com/chainscout-hq/crypto-repo-collector/internal/storage"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/github"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/sinks"
)

// Config holds the per-run collection parameters.
type Config struct {
	Queries      []string
	Search       github.SearchOptions
	RequestDelay time.Duration
}

// Service runs one collection pass: search every query, deduplicate by
// repository id, enrich each unique hit with its file listing and README.
type Service struct {
	api       RepositoryAPI
	cfg       Config
	store     storage.Store
	scraper   DescriptionScraper
	publisher RecordPublisher
	log       logger.Logger
}

// NewService wires a collection service. Store, scraper, publisher, and
// logger may all be nil; the corresponding step is skipped.
func NewService(api RepositoryAPI, cfg Config, store storage.Store, scraper DescriptionScraper, publisher RecordPublisher, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		api:       api,
		cfg:       cfg,
		store:     store,
		scraper:   scraper,
		publisher: publisher,
		log:       log,
	}
}

// Collect executes a full pass and returns the ordered records. The returned
// error is non-nil only for invalid wiring or context cancellation; failed
// lookups for individual repositories degrade to null fields instead.
func (s *Service) Collect(ctx context.Context) ([]domain.RepositoryRecord, error) {
	if s == nil || s.api == nil {
		return nil, fmt.Errorf("collector service is not initialized")
	}
	if len(s.cfg.Queries) == 0 {
		return nil, fmt.Errorf("no search queries configured")
	}

	summaries, err := s.searchAll(ctx)
	if err != nil {
		return nil, err
	}

	unique := Deduplicate(summaries)
	s.log.InfoObj("search results deduplicated", "dedup_meta", map[string]any{
		"total_hits":   len(summaries),
		"unique_repos": len(unique),
	})

	records, err := s.enrichAll(ctx, unique)
	if err != nil {
		return records, err
	}

	if s.scraper != nil {
		records = s.scraper.Enrich(ctx, records)
	}

	s.finalize(ctx, records)
	return records, nil
}

// searchAll runs every configured query sequentially and concatenates the hits.
func (s *Service) searchAll(ctx context.Context) ([]domain.RepositorySummary, error) {
	var all []domain.RepositorySummary
	for _, query := range s.cfg.Queries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		found := s.api.SearchRepositories(ctx, query, s.cfg.Search)
		s.log.InfoObj("query search completed", "search_result", map[string]any{
			"query": query,
			"hits":  len(found),
		})
		all = append(all, found...)
	}
	return all, nil
}

// enrichAll fetches the file listing and README for each repository in
// order, throttled between repositories. Cancellation returns what has been
// enriched so far along with the context error.
func (s *Service) enrichAll(ctx context.Context, summaries []domain.RepositorySummary) ([]domain.RepositoryRecord, error) {
	records := make([]domain.RepositoryRecord, 0, len(summaries))

	for i, summary := range summaries {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}

		records = append(records, s.enrich(ctx, summary))

		if s.cfg.RequestDelay > 0 && i < len(summaries)-1 {
			timer := time.NewTimer(s.cfg.RequestDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return records, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return records, nil
}

func (s *Service) enrich(ctx context.Context, summary domain.RepositorySummary) domain.RepositoryRecord {
	record := domain.RepositoryRecord{RepositorySummary: summary}

	files, err := s.api.RepositoryFiles(ctx, summary.HTMLURL)
	if err != nil {
		s.log.WarnObj("file listing failed", "repo_error", map[string]any{
			"repo":  summary.FullName,
			"error": err.Error(),
		})
	} else {
		record.Files = files
	}

	text, err := s.api.Readme(ctx, summary.HTMLURL)
	switch {
	case err == nil:
		record.Readme = &text
	case errors.Is(err, github.ErrReadmeNotFound):
		s.log.DebugObj("readme not found", "repo", summary.FullName)
	default:
		s.log.WarnObj("readme fetch failed", "repo_error", map[string]any{
			"repo":  summary.FullName,
			"error": err.Error(),
		})
	}

	return record
}

// finalize marks records in the seen store and fans them out to sinks.
// Neither step affects the returned collection.
func (s *Service) finalize(ctx context.Context, records []domain.RepositoryRecord) {
	previouslySeen := 0
	for _, record := range records {
		if s.store != nil {
			if seen, err := s.store.SeenRepo(record.ID); err == nil && seen {
				previouslySeen++
			}
			if err := s.store.MarkRepo(record.ID); err != nil {
				s.log.WarnObj("seen store mark failed", "repo_error", map[string]any{
					"repo":  record.FullName,
					"error": err.Error(),
				})
			}
		}

		if s.publisher != nil {
			if _, err := s.publisher.Publish(ctx, sinks.NewEvent(record)); err != nil {
				s.log.ErrorObj("record fanout failed", "repo_error", map[string]any{
					"repo":  record.FullName,
					"error": err.Error(),
				})
			}
		}
	}

	if s.store != nil {
		s.log.InfoObj("collection finalized", "seen_meta", map[string]any{
			"records":         len(records),
			"previously_seen": previouslySeen,
		})
	}
}

// Deduplicate collapses summaries sharing an id into one entry. The last
// occurrence wins the slot while the output keeps each id's first-seen
// position, so result ordering is deterministic.
func Deduplicate(in []domain.RepositorySummary) []domain.RepositorySummary {
	positions := make(map[int64]int, len(in))
	out := make([]domain.RepositorySummary, 0, len(in))

	for _, summary := range in {
		if pos, ok := positions[summary.ID]; ok {
			out[pos] = summary
			continue
		}
		positions[summary.ID] = len(out)
		out = append(out, summary)
	}
	return out
}
