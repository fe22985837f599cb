package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chainscout-hq/crypto-repo-collector/internal/collector"
	"github.com/chainscout-hq/crypto-repo-collector/internal/config"
	"github.com/chainscout-hq/crypto-repo-collector/internal/exporter"
	"github.com/chainscout-hq/crypto-repo-collector/internal/logger"
	"github.com/chainscout-hq/crypto-repo-collector/internal/storage"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/github"
	"github.com/chainscout-hq/crypto-repo-collector/pkg/sinks"
)

// Collector represents the collection runtime. It wires the GitHub client,
// collection service, optional sinks, and the snapshot exporter, and
// executes collection cycles.
type Collector struct {
	cfg      *config.Config
	service  *collector.Service
	fanout   *sinks.Fanout
	store    storage.Store
	interval time.Duration
	log      logger.Logger
}

// NewCollector builds a collector runtime from config.
func NewCollector(ctx context.Context, cfg *config.Config, log logger.Logger) (*Collector, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	token, err := config.LoadToken(cfg.TokensFile)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	client := github.NewClient(nil, token)

	var fanout *sinks.Fanout
	if strings.TrimSpace(cfg.SinksFile) != "" {
		sinkReg, err := sinks.LoadRegistry(cfg.SinksFile)
		if err != nil {
			return nil, fmt.Errorf("load sinks registry: %w", err)
		}

		enabled := sinkReg.Enabled()
		built, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabled, log)
		if err != nil {
			return nil, fmt.Errorf("build sinks: %w", err)
		}
		fanout = sinks.NewFanout(built)

		sinkSummaries := make([]map[string]string, 0, len(enabled))
		for _, sinkCfg := range enabled {
			sinkSummaries = append(sinkSummaries, map[string]string{
				"id":   sinkCfg.ID,
				"type": sinkCfg.Type,
			})
		}
		log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
			"count": len(sinkSummaries),
			"sinks": sinkSummaries,
		})
	}

	storeOpts := storage.Options{
		RepoTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"repo_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	var scraper collector.DescriptionScraper
	if cfg.ScrapeDescriptions {
		scraper = collector.NewScraper(nil, cfg.RequestDelay)
	}

	var publisher collector.RecordPublisher
	if fanout != nil && fanout.Size() > 0 {
		publisher = fanout
	}

	serviceCfg := collector.Config{
		Queries: cfg.Queries,
		Search: github.SearchOptions{
			Sort:     cfg.SearchSort,
			Order:    cfg.SearchOrder,
			PerPage:  cfg.SearchPerPage,
			NumPages: cfg.SearchNumPages,
		},
		RequestDelay: cfg.RequestDelay,
	}

	return &Collector{
		cfg:      cfg,
		service:  collector.NewService(client, serviceCfg, store, scraper, publisher, log),
		fanout:   fanout,
		store:    store,
		interval: cfg.CollectInterval,
		log:      log,
	}, nil
}

// Run executes one collection cycle, or keeps cycling on a ticker when a
// collect interval is configured, until the context is cancelled.
func (c *Collector) Run(ctx context.Context) error {
	if c == nil || c.service == nil {
		return fmt.Errorf("collector is not initialized")
	}
	defer c.closeStore()

	c.log.InfoObj("collector starting", "collector_state", map[string]any{
		"queries_count": len(c.cfg.Queries),
		"sinks_count":   c.fanout.Size(),
		"output_path":   c.cfg.OutputPath,
		"interval":      c.interval.String(),
	})

	if err := c.runOnce(ctx); err != nil {
		return fmt.Errorf("collection cycle: %w", err)
	}

	if c.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.InfoObj("collector loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := c.runOnce(ctx); err != nil {
				c.log.ErrorObj("scheduled collection failed", "error", err)
			}
		}
	}
}

// runOnce performs a single collection pass and persists the snapshot.
func (c *Collector) runOnce(ctx context.Context) error {
	start := time.Now()
	c.log.InfoObj("collection started", "collection_meta", map[string]any{
		"queries_count": len(c.cfg.Queries),
		"started_at":    start.UTC(),
	})

	records, err := c.service.Collect(ctx)
	if err != nil {
		return err
	}

	if err := exporter.WriteSnapshot(c.cfg.OutputPath, records); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}

	c.log.InfoObj("collection completed", "collection_meta", map[string]any{
		"records":     len(records),
		"output_path": c.cfg.OutputPath,
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return nil
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (c *Collector) closeStore() {
	if c == nil || c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.log.ErrorObj("storage close failed", "error", err)
	}
}
