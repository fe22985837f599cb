package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local seen-repository cache abstraction.

// Store tracks repository ids observed by previous collection runs.
type Store interface {
	Close() error
	SeenRepo(id int64) (bool, error)
	MarkRepo(id int64) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	RepoTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultRepoTTL         = 5 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.RepoTTL <= 0 {
		opts.RepoTTL = defaultRepoTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                 { return nil }
func (noopStore) SeenRepo(int64) (bool, error) { return false, nil }
func (noopStore) MarkRepo(int64) error         { return nil }
