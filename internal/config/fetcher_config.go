package config

// FetcherConfig holds configuration for the repository content fetcher.
type FetcherConfig struct {
	BaseURL       string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	Token         string `json:"token,omitempty" yaml:"token,omitempty"`
	Concurrency   int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"omitempty,min=1,max=64"`
	TimeoutSecs   int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	MaxFileSizeKB int    `json:"max_file_size_kb,omitempty" yaml:"max_file_size_kb,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultFetcherConfig creates a new FetcherConfig with default values.
func NewDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		BaseURL:       "https://api.github.com",
		Concurrency:   8,
		TimeoutSecs:   30,
		MaxFileSizeKB: 512,
	}
}
