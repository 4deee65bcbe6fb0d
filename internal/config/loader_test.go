package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGlobalConfig_Defaults(t *testing.T) {
	cfg, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	// A provided path that does not exist is an error, unlike the
	// no-path case which falls back to defaults.
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, "https://api.github.com", cfg.FetcherConfig.BaseURL)
	assert.Equal(t, 8, cfg.FetcherConfig.Concurrency)
	assert.Equal(t, "main", cfg.ScannerConfig.DefaultBranch)
	assert.Equal(t, 10, cfg.ScannerConfig.HistoryLimit)
	assert.False(t, cfg.ScannerConfig.EnrichmentEnabled)
	assert.Equal(t, "sqlite", cfg.StorageConfig.Backend)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	path := writeTempConfig(t, "repoguard.yaml", `
fetcher_config:
  base_url: https://github.example.com/api/v3
  concurrency: 2
scanner_config:
  default_branch: trunk
  enrichment_enabled: true
storage_config:
  backend: valkey
  valkey_addr: cache.internal:6379
log_config:
  level: debug
`)

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://github.example.com/api/v3", cfg.FetcherConfig.BaseURL)
	assert.Equal(t, 2, cfg.FetcherConfig.Concurrency)
	assert.Equal(t, "trunk", cfg.ScannerConfig.DefaultBranch)
	assert.True(t, cfg.ScannerConfig.EnrichmentEnabled)
	assert.Equal(t, "valkey", cfg.StorageConfig.Backend)
	// Unset fields keep their defaults.
	assert.Equal(t, 30, cfg.FetcherConfig.TimeoutSecs)
	assert.Equal(t, 10, cfg.ScannerConfig.HistoryLimit)
}

func TestLoadGlobalConfig_JSON(t *testing.T) {
	path := writeTempConfig(t, "repoguard.json", `{
		"scanner_config": {"history_limit": 25}
	}`)

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.ScannerConfig.HistoryLimit)
}

func TestLoadGlobalConfig_MalformedYAML(t *testing.T) {
	path := writeTempConfig(t, "repoguard.yaml", "fetcher_config: [not a mapping")
	_, err := LoadGlobalConfig(path)
	assert.Error(t, err)
}

func TestLoadGlobalConfig_UnsupportedExtension(t *testing.T) {
	path := writeTempConfig(t, "repoguard.toml", "backend = 'sqlite'")
	_, err := LoadGlobalConfig(path)
	assert.Error(t, err)
}

func TestGetConfigPath_ExplicitWins(t *testing.T) {
	assert.Equal(t, "/etc/repoguard.yaml", GetConfigPath("/etc/repoguard.yaml"))
}
