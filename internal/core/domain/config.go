package domain

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	// DefaultInterval is the gap between full resync cycles.
	DefaultInterval = time.Hour

	// DefaultPageSize is the per_page parameter sent on listing requests.
	DefaultPageSize = 100

	// DefaultPaceInterval is the minimum gap between resource-kind calls.
	DefaultPaceInterval = time.Second
)

// Credentials is an optional authentication pair or token, immutable for
// the process lifetime.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// Basic reports whether a username/password pair is configured.
func (c *Credentials) Basic() bool {
	return c != nil && c.Username != "" && c.Password != ""
}

// Bearer reports whether a personal access token is configured.
func (c *Credentials) Bearer() bool {
	return c != nil && c.Token != ""
}

// SyncConfig is the immutable configuration of the synchroniser, supplied
// once at construction.
type SyncConfig struct {
	// Owner is the GitHub user or organisation owning the repositories.
	Owner string

	// Repositories is the set of repository names to keep in sync.
	Repositories []string

	// Interval is the sleep between full resync cycles.
	Interval time.Duration

	// Index overrides the target index name. Empty means github-<owner>.
	Index string

	// PageSize is the page-size parameter for listing endpoints.
	PageSize int

	// PaceInterval spaces consecutive resource-kind calls.
	PaceInterval time.Duration

	// Credentials authenticates outbound requests when set.
	Credentials *Credentials
}

// IndexName returns the target index, defaulting to github-<owner>.
func (c SyncConfig) IndexName() string {
	if c.Index != "" {
		return c.Index
	}
	return "github-" + c.Owner
}

// Validate checks the configuration is complete enough to sync.
func (c SyncConfig) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalidConfig)
	}
	if len(c.Repositories) == 0 {
		return fmt.Errorf("%w: at least one repository is required", ErrInvalidConfig)
	}
	for _, repo := range c.Repositories {
		if repo == "" {
			return fmt.Errorf("%w: empty repository name", ErrInvalidConfig)
		}
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// IndexSettings is the analysis configuration applied when the index is
// provisioned.
type IndexSettings struct {
	// DefaultTokenizer splits terms at index time. Whitespace keeps
	// hyphenated usernames like "user-name" as a single term.
	DefaultTokenizer string
}

// DefaultIndexSettings returns the settings used for new indexes.
func DefaultIndexSettings() IndexSettings {
	return IndexSettings{DefaultTokenizer: "whitespace"}
}
