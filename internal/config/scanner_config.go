package config

// ScannerConfig holds configuration for scan orchestration.
type ScannerConfig struct {
	DefaultBranch         string `json:"default_branch,omitempty" yaml:"default_branch,omitempty"`
	HistoryLimit          int    `json:"history_limit,omitempty" yaml:"history_limit,omitempty" validate:"omitempty,min=1,max=100"`
	EnrichmentEnabled     bool   `json:"enrichment_enabled" yaml:"enrichment_enabled"`
	EnrichmentConcurrency int    `json:"enrichment_concurrency,omitempty" yaml:"enrichment_concurrency,omitempty" validate:"omitempty,min=1,max=16"`
	EnrichmentBaseURL     string `json:"enrichment_base_url,omitempty" yaml:"enrichment_base_url,omitempty" validate:"omitempty,url"`
}

// NewDefaultScannerConfig creates a new ScannerConfig with default values.
func NewDefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		DefaultBranch:         "main",
		HistoryLimit:          10,
		EnrichmentEnabled:     false,
		EnrichmentConcurrency: 4,
		EnrichmentBaseURL:     "https://api.osv.dev",
	}
}
