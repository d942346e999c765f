package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
owner = "acme"
repositories = ["widgets", "gadgets"]
interval = 1800
index = "custom-index"
page_size = 50

[auth]
token = "ghp_secret"

[store]
path = "/var/lib/ghsync"

[throttle]
interval_ms = 250
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Owner)
	assert.Equal(t, []string{"widgets", "gadgets"}, cfg.Repositories)
	assert.Equal(t, "/var/lib/ghsync", cfg.Store.Path)

	sync := cfg.SyncConfig()
	assert.Equal(t, 30*time.Minute, sync.Interval)
	assert.Equal(t, "custom-index", sync.IndexName())
	assert.Equal(t, 50, sync.PageSize)
	assert.Equal(t, 250*time.Millisecond, sync.PaceInterval)
	require.NotNil(t, sync.Credentials)
	assert.Equal(t, "ghp_secret", sync.Credentials.Token)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
owner = "acme"
repositories = ["widgets"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	sync := cfg.SyncConfig()
	assert.Equal(t, domain.DefaultInterval, sync.Interval)
	assert.Equal(t, domain.DefaultPageSize, sync.PageSize)
	assert.Equal(t, domain.DefaultPaceInterval, sync.PaceInterval)
	assert.Equal(t, "github-acme", sync.IndexName())
	assert.Nil(t, sync.Credentials)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing owner",
			content: `repositories = ["widgets"]`,
		},
		{
			name:    "no repositories",
			content: `owner = "acme"`,
		},
		{
			name:    "malformed toml",
			content: `owner = `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestBasicAuthCredentials(t *testing.T) {
	path := writeConfig(t, `
owner = "acme"
repositories = ["widgets"]

[auth]
username = "octocat"
password = "hunter2"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	creds := cfg.SyncConfig().Credentials
	require.NotNil(t, creds)
	assert.True(t, creds.Basic())
	assert.False(t, creds.Bearer())
	assert.Equal(t, "octocat", creds.Username)
	assert.Equal(t, "hunter2", creds.Password)
}
