// Package file loads the on-disk TOML configuration.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

// Config is the TOML configuration file layout.
type Config struct {
	// Owner is the GitHub user or organisation.
	Owner string `toml:"owner"`

	// Repositories is the set of repository names to keep in sync.
	Repositories []string `toml:"repositories"`

	// Interval is the gap between full resync cycles, in seconds.
	Interval int `toml:"interval"`

	// Index overrides the target index name.
	Index string `toml:"index"`

	// PageSize is the page-size parameter sent on listing requests.
	PageSize int `toml:"page_size"`

	Auth struct {
		Username string `toml:"username"`
		Password string `toml:"password"`
		Token    string `toml:"token"`
	} `toml:"auth"`

	Store struct {
		// Path is the data directory for the SQLite store.
		Path string `toml:"path"`
	} `toml:"store"`

	Throttle struct {
		// IntervalMS is the minimum gap between resource-kind calls,
		// in milliseconds.
		IntervalMS int `toml:"interval_ms"`
	} `toml:"throttle"`
}

// DefaultPath returns the default configuration file location,
// ~/.ghsync/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ghsync", "config.toml"), nil
}

// Load reads and validates the configuration file at path. An empty
// path means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.SyncConfig().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SyncConfig converts the file layout into the immutable domain
// configuration, applying defaults for everything unset.
func (c *Config) SyncConfig() domain.SyncConfig {
	interval := domain.DefaultInterval
	if c.Interval > 0 {
		interval = time.Duration(c.Interval) * time.Second
	}

	pageSize := domain.DefaultPageSize
	if c.PageSize > 0 {
		pageSize = c.PageSize
	}

	pace := domain.DefaultPaceInterval
	if c.Throttle.IntervalMS > 0 {
		pace = time.Duration(c.Throttle.IntervalMS) * time.Millisecond
	}

	var creds *domain.Credentials
	if c.Auth.Username != "" || c.Auth.Password != "" || c.Auth.Token != "" {
		creds = &domain.Credentials{
			Username: c.Auth.Username,
			Password: c.Auth.Password,
			Token:    c.Auth.Token,
		}
	}

	return domain.SyncConfig{
		Owner:        c.Owner,
		Repositories: c.Repositories,
		Interval:     interval,
		Index:        c.Index,
		PageSize:     pageSize,
		PaceInterval: pace,
		Credentials:  creds,
	}
}
