package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	TokensFile string   `mapstructure:"tokens_file"`
	OutputPath string   `mapstructure:"output_path"`
	SinksFile  string   `mapstructure:"sinks_file"`
	Queries    []string `mapstructure:"queries"`

	SearchSort     string `mapstructure:"search_sort"`
	SearchOrder    string `mapstructure:"search_order"`
	SearchPerPage  int    `mapstructure:"search_per_page"`
	SearchNumPages int    `mapstructure:"search_num_pages"`

	RequestDelayMs int           `mapstructure:"request_delay_ms"`
	RequestDelay   time.Duration `mapstructure:"-"`

	ScrapeDescriptions bool `mapstructure:"scrape_descriptions"`

	CollectIntervalSeconds int64         `mapstructure:"collect_interval"`
	CollectInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// DefaultQueries are the crypto-domain search terms the collector runs when
// no override is configured.
var DefaultQueries = []string{
	"cryptocurrency",
	"smart contract",
	"proof-of-work",
	"full node",
	"full-node",
	"smart-contract",
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "crypto-repo-collector")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("tokens_file", "./tokens.json")
	v.SetDefault("output_path", "./data/crypto_repos.json")
	v.SetDefault("sinks_file", "")
	v.SetDefault("queries", DefaultQueries)
	v.SetDefault("search_sort", "updated")
	v.SetDefault("search_order", "asc")
	v.SetDefault("search_per_page", 10)
	v.SetDefault("search_num_pages", 1)
	v.SetDefault("request_delay_ms", 500)
	v.SetDefault("scrape_descriptions", false)
	v.SetDefault("collect_interval", 0) // seconds; 0 runs a single cycle
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/seen.db")
	v.SetDefault("storage_ttl_seconds", int64((5*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.TokensFile) == "" {
		return nil, fmt.Errorf("tokens_file must not be empty")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return nil, fmt.Errorf("output_path must not be empty")
	}
	if len(cfg.Queries) == 0 {
		return nil, fmt.Errorf("queries must not be empty")
	}
	if cfg.SearchPerPage <= 0 {
		return nil, fmt.Errorf("invalid search_per_page (must be positive)")
	}
	if cfg.SearchNumPages <= 0 {
		return nil, fmt.Errorf("invalid search_num_pages (must be positive)")
	}
	if cfg.RequestDelayMs < 0 {
		return nil, fmt.Errorf("invalid request_delay_ms (must not be negative)")
	}
	cfg.RequestDelay = time.Duration(cfg.RequestDelayMs) * time.Millisecond

	if cfg.CollectIntervalSeconds < 0 {
		return nil, fmt.Errorf("invalid collect_interval (must not be negative seconds)")
	}
	cfg.CollectInterval = time.Duration(cfg.CollectIntervalSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// tokensFile mirrors the on-disk shape of the credentials file.
type tokensFile struct {
	Tokens []string `json:"tokens"`
}

// LoadToken reads the API token from the credentials file. Only the first
// entry of the token list is used.
func LoadToken(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("tokens file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read tokens file: %w", err)
	}

	var tf tokensFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return "", fmt.Errorf("decode tokens file: %w", err)
	}

	if len(tf.Tokens) == 0 || strings.TrimSpace(tf.Tokens[0]) == "" {
		return "", errors.New("tokens file contains no usable token")
	}
	return strings.TrimSpace(tf.Tokens[0]), nil
}
