package collector

import (
	"context"
	"testing"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/httpclient"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>alice/chain</title>
  <meta property="og:description" content="A minimal blockchain node." />
</head>
<body></body>
</html>`

type pageResponse struct {
	body       []byte
	statusCode int
}

func (r pageResponse) Body() []byte    { return r.body }
func (r pageResponse) StatusCode() int { return r.statusCode }

type pageClient struct {
	calls int
	body  string
}

func (c *pageClient) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	c.calls++
	return pageResponse{body: []byte(c.body), statusCode: 200}, nil
}

func record(id int64, desc *string) domain.RepositoryRecord {
	return domain.RepositoryRecord{
		RepositorySummary: domain.RepositorySummary{
			ID:          id,
			FullName:    "alice/chain",
			HTMLURL:     "https://github.com/alice/chain",
			Description: desc,
		},
	}
}

func TestScraperFillsMissingDescriptions(t *testing.T) {
	client := &pageClient{body: samplePage}
	scraper := NewScraper(client, 0)

	out := scraper.Enrich(context.Background(), []domain.RepositoryRecord{record(1, nil)})
	if out[0].Description == nil || *out[0].Description != "A minimal blockchain node." {
		t.Fatalf("expected scraped description, got %v", out[0].Description)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 page fetch, got %d", client.calls)
	}
}

func TestScraperLeavesExistingDescriptionsAlone(t *testing.T) {
	client := &pageClient{body: samplePage}
	scraper := NewScraper(client, 0)

	existing := "from the API"
	out := scraper.Enrich(context.Background(), []domain.RepositoryRecord{record(1, &existing)})
	if *out[0].Description != existing {
		t.Fatalf("existing description must be kept, got %v", *out[0].Description)
	}
	if client.calls != 0 {
		t.Fatalf("expected no page fetch for described record, got %d", client.calls)
	}
}

func TestParseDescriptionFallsBackToMetaName(t *testing.T) {
	page := `<html><head><meta name="description" content="fallback text" /></head></html>`
	desc, err := parseDescription([]byte(page))
	if err != nil {
		t.Fatalf("parseDescription: %v", err)
	}
	if desc != "fallback text" {
		t.Fatalf("unexpected description: %q", desc)
	}
}
