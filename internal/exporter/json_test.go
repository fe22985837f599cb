package exporter

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleRecords() []domain.RepositoryRecord {
	return []domain.RepositoryRecord{
		{
			RepositorySummary: domain.RepositorySummary{
				ID:          101,
				Name:        "chainkit",
				FullName:    "alice/chainkit",
				HTMLURL:     "https://github.com/alice/chainkit",
				Description: strPtr("toolkit"),
				UpdatedAt:   "2024-05-01T10:00:00Z",
				Language:    strPtr("Go"),
			},
			Files: []domain.FileEntry{
				{
					Name:        "main.go",
					Path:        "main.go",
					URL:         "https://github.com/alice/chainkit/blob/main/main.go",
					LastUpdated: "https://api.github.com/repos/alice/chainkit/git/blobs/abc",
				},
			},
			Readme: strPtr("# Chainkit\n"),
		},
		{
			RepositorySummary: domain.RepositorySummary{
				ID:        102,
				Name:      "node",
				FullName:  "bob/node",
				HTMLURL:   "https://github.com/bob/node",
				UpdatedAt: "2024-05-02T10:00:00Z",
			},
			// Files and Readme stay null on fetch failure.
		},
	}
}

func TestWriteSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "crypto_repos.json")
	records := sampleRecords()

	if err := WriteSnapshot(path, records); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(records, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", records, got)
	}
}

func TestWriteSnapshotCreatesDirectoryAndIndents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "crypto_repos.json")

	if err := WriteSnapshot(path, sampleRecords()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(raw)
	if !strings.HasPrefix(content, "[\n    {") {
		t.Fatalf("expected 4-space indented array, got prefix %q", content[:min(20, len(content))])
	}
	if !strings.Contains(content, `"full_name": "alice/chainkit"`) {
		t.Fatalf("expected record fields in output")
	}
	if !strings.Contains(content, `"readme": null`) {
		t.Fatalf("expected failed lookups persisted as null")
	}
}

func TestWriteSnapshotEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteSnapshot(path, nil); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(got))
	}
}
