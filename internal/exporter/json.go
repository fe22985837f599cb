package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
)

// jsonIndent matches the persisted format: pretty-printed, 4-space indent.
const jsonIndent = "    "

// WriteSnapshot serializes the full collection to path as a pretty-printed
// JSON array, creating the containing directory if absent. The file is
// replaced wholesale; there is no incremental persistence.
func WriteSnapshot(path string, records []domain.RepositoryRecord) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("output path is empty")
	}

	if records == nil {
		records = []domain.RepositoryRecord{}
	}

	payload, err := json.MarshalIndent(records, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a previously written collection from path.
func ReadSnapshot(path string) ([]domain.RepositoryRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var records []domain.RepositoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, nil
}
