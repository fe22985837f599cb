package collector

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
	"github.com/chainscout-hq/crypto-repo-collector/internal/logger"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
)

// Scraper fills missing record descriptions by fetching the repository's
// HTML page and reading its OG meta tags. Records that already carry an
// API-provided description are left untouched.
type Scraper struct {
	client httpclient.Client
	delay  time.Duration
}

// NewScraper constructs a scraper with the provided HTTP client (or default).
func NewScraper(client httpclient.Client, delay time.Duration) *Scraper {
	if client == nil {
		client = httpclient.NewDefaultClient()
	}
	return &Scraper{client: client, delay: delay}
}

// Enrich iterates records, fetching pages (with throttling) for those
// missing a description.
func (s *Scraper) Enrich(ctx context.Context, records []domain.RepositoryRecord) []domain.RepositoryRecord {
	// seed output with originals so we can return what we have on abort
	out := append([]domain.RepositoryRecord(nil), records...)

	for i, rec := range records {
		if rec.Description != nil && strings.TrimSpace(*rec.Description) != "" {
			continue
		}

		select {
		case <-ctx.Done():
			return out
		default:
		}

		desc, err := s.fetchDescription(ctx, rec.HTMLURL)
		if err != nil {
			logger.WarnObj("description scrape failed", "scrape_error", map[string]any{
				"repo":  rec.FullName,
				"error": err.Error(),
			})
		} else if desc != "" {
			out[i].Description = &desc
		}

		if s.delay > 0 && i < len(records)-1 {
			timer := time.NewTimer(s.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return out
			case <-timer.C:
			}
		}
	}

	return out
}

func (s *Scraper) fetchDescription(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.client.Get(ctx, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	return parseDescription(body)
}

func parseDescription(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	if v := extract(`meta[property="og:description"]`); v != "" {
		return v, nil
	}
	return extract(`meta[name="description"]`), nil
}
