package config

import (
	"github.com/rajyadav1814/repoguard/internal/logger"
)

// GlobalConfig contains all configuration sections for the application.
type GlobalConfig struct {
	FetcherConfig FetcherConfig `json:"fetcher_config,omitempty" yaml:"fetcher_config,omitempty"`
	ScannerConfig ScannerConfig `json:"scanner_config,omitempty" yaml:"scanner_config,omitempty"`
	StorageConfig StorageConfig `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	LogConfig     logger.Config `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		FetcherConfig: NewDefaultFetcherConfig(),
		ScannerConfig: NewDefaultScannerConfig(),
		StorageConfig: NewDefaultStorageConfig(),
		LogConfig:     logger.NewDefaultConfig(),
	}
}
