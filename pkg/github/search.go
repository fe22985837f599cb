package github

import (
	"context"
	"net/url"
	"strconv"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
)

// SearchOptions control repository search ordering and pagination.
type SearchOptions struct {
	Sort     string
	Order    string
	PerPage  int
	NumPages int
}

// DefaultSearchOptions returns the collector's standard search parameters.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Sort:     "updated",
		Order:    "asc",
		PerPage:  10,
		NumPages: 1,
	}
}

func (o SearchOptions) normalized() SearchOptions {
	def := DefaultSearchOptions()
	if o.Sort == "" {
		o.Sort = def.Sort
	}
	if o.Order == "" {
		o.Order = def.Order
	}
	if o.PerPage <= 0 {
		o.PerPage = def.PerPage
	}
	if o.NumPages <= 0 {
		o.NumPages = def.NumPages
	}
	return o
}

// searchResponse decodes only the fields the collector models; everything
// else the search API returns is dropped here.
type searchResponse struct {
	Items []domain.RepositorySummary `json:"items"`
}

// SearchRepositories pages through the repository search endpoint for the
// given query and returns the projected summaries. Paging stops at the first
// failed page: whatever was collected up to that point is returned and no
// further page is requested.
func (c *Client) SearchRepositories(ctx context.Context, query string, opts SearchOptions) []domain.RepositorySummary {
	opts = opts.normalized()

	var all []domain.RepositorySummary
	for page := 1; page <= opts.NumPages; page++ {
		var res searchResponse
		if !c.getJSON(ctx, c.searchURL(query, opts, page), &res) {
			break
		}
		all = append(all, res.Items...)
	}
	return all
}

func (c *Client) searchURL(query string, opts SearchOptions, page int) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", opts.Sort)
	params.Set("order", opts.Order)
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("page", strconv.Itoa(page))
	return c.apiBase + "/search/repositories?" + params.Encode()
}
