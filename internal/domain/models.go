package domain

// Domain contains core models shared across the collector.

// RepositorySummary is the projection of a GitHub search hit down to the
// seven fields the collector keeps. Everything else the API returns is
// discarded at decode time.
type RepositorySummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	HTMLURL     string  `json:"html_url"`
	Description *string `json:"description"`
	UpdatedAt   string  `json:"updated_at"`
	Language    *string `json:"language"`
}

// FileEntry describes one top-level file of a repository. LastUpdated holds
// the per-file git object reference URL reported by the contents API, kept
// verbatim as a string.
type FileEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	URL         string `json:"url"`
	LastUpdated string `json:"last_updated"`
}

// RepositoryRecord is a summary enriched with the repository's top-level
// files and README text. Files is nil when the listing could not be fetched;
// Readme is nil when no README was found or the lookup failed.
type RepositoryRecord struct {
	RepositorySummary
	Files  []FileEntry `json:"files"`
	Readme *string     `json:"readme"`
}
