package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rajyadav1814/repoguard/internal/common"
)

// defaultConfigPaths are searched in order when no explicit path is given.
var defaultConfigPaths = []string{
	"repoguard.yaml",
	"repoguard.yml",
	"config/repoguard.yaml",
}

// GetConfigPath returns the config file path to use: the provided path when
// set, otherwise the first default location that exists, otherwise empty.
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		return providedPath
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadGlobalConfig loads the configuration from a file or default
// locations. Supports both YAML and JSON formats; YAML is preferred when
// the extension is .yaml or .yml. When no config file is found, defaults
// are returned.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read config file '%s'", filePath)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.WrapErrorf(err, "invalid YAML in '%s'", filePath)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return common.WrapErrorf(err, "invalid JSON in '%s'", filePath)
		}
	default:
		return common.NewValidationError("config_file", filePath, "unsupported config file extension")
	}
	return nil
}
