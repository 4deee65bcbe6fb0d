package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

// Config holds configuration for logger setup.
type Config struct {
	Level         string `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,loglevel"`
	Format        string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,logformat"`
	EnableConsole bool   `json:"enable_console" yaml:"enable_console"`
	EnableFile    bool   `json:"enable_file" yaml:"enable_file"`
	FilePath      string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	MaxSizeMB     int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups    int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
}

// NewDefaultConfig returns the default logger configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:         "info",
		Format:        "console",
		EnableConsole: true,
		EnableFile:    false,
		MaxSizeMB:     100,
		MaxBackups:    3,
	}
}

// ParseLevel converts a level string into a zerolog level, defaulting to
// info for empty or unknown values.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
