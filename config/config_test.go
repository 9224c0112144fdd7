package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaultsPopulatesSaneValues(t *testing.T) {
	SetDefaults()
	assert.Equal(t, 3, Config.Crawler.MaxDepth)
	assert.Equal(t, 10, Config.Crawler.ConcurrentRequests)
	assert.Equal(t, "best_first", Config.Algorithms.PrimaryAlgorithm)
	assert.NotEmpty(t, Config.Network.UserAgents)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, 3, Config.Crawler.MaxDepth)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[crawler]
max_depth = 7
max_pages = 50
concurrent_requests = 4
seed_urls = ["https://example.com"]
user_agent = "custom-agent/1.0"

[network]
request_timeout_secs = 15
request_delay_ms = 250
max_retries = 2
respect_robots_txt = true
max_content_size_mb = 5
user_agents = ["custom-agent/1.0"]
max_redirects = 3
connect_timeout_secs = 5

[storage]
database_url = "test.db"
enable_caching = true
storage_path = "./idx"

[algorithms]
primary_algorithm = "bfs"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	require.NoError(t, Load(path))
	assert.Equal(t, 7, Config.Crawler.MaxDepth)
	assert.Equal(t, []string{"https://example.com"}, Config.Crawler.SeedURLs)
	assert.Equal(t, "bfs", Config.Algorithms.PrimaryAlgorithm)
}

func TestLoadRejectsInvalidPrimaryAlgorithm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[algorithms]
primary_algorithm = "not-a-real-algorithm"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	err := Load(path)
	assert.Error(t, err)
}

func TestDerivedDurationHelpers(t *testing.T) {
	SetDefaults()
	Config.Network.RequestTimeoutSecs = 5
	Config.Network.RequestDelayMs = 1500
	Config.Network.MaxContentSizeMB = 2

	assert.Equal(t, int64(2*1024*1024), MaxContentSizeBytes())
	assert.Equal(t, int64(5), RequestTimeout().Nanoseconds()/1e9)
	assert.Equal(t, int64(1500), RequestDelay().Milliseconds())
}
