package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncConfigIndexName(t *testing.T) {
	cfg := SyncConfig{Owner: "acme"}
	assert.Equal(t, "github-acme", cfg.IndexName())

	cfg.Index = "custom"
	assert.Equal(t, "custom", cfg.IndexName())
}

func TestSyncConfigValidate(t *testing.T) {
	valid := SyncConfig{
		Owner:        "acme",
		Repositories: []string{"widgets"},
		Interval:     time.Hour,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SyncConfig)
	}{
		{"missing owner", func(c *SyncConfig) { c.Owner = "" }},
		{"no repositories", func(c *SyncConfig) { c.Repositories = nil }},
		{"empty repository name", func(c *SyncConfig) { c.Repositories = []string{"widgets", ""} }},
		{"non-positive interval", func(c *SyncConfig) { c.Interval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestCredentials(t *testing.T) {
	var nilCreds *Credentials
	assert.False(t, nilCreds.Basic())
	assert.False(t, nilCreds.Bearer())

	basic := &Credentials{Username: "user", Password: "pass"}
	assert.True(t, basic.Basic())
	assert.False(t, basic.Bearer())

	token := &Credentials{Token: "ghp_xxx"}
	assert.False(t, token.Basic())
	assert.True(t, token.Bearer())
}
