package config

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rajyadav1814/repoguard/internal/common"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "json":
			return true
		default:
			return false
		}
	})

	// Register custom validation for the storage backend selector
	_ = validate.RegisterValidation("storagebackend", func(fl validator.FieldLevel) bool {
		backend := strings.ToLower(fl.Field().String())
		switch backend {
		case "", "sqlite", "valkey":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		return common.WrapError(err, "configuration validation failed")
	}

	if cfg.StorageConfig.Backend == "sqlite" && cfg.StorageConfig.SQLitePath == "" {
		return common.NewValidationError("sqlite_path", cfg.StorageConfig.SQLitePath, "sqlite path required for sqlite backend")
	}
	if cfg.StorageConfig.Backend == "valkey" && cfg.StorageConfig.ValkeyAddr == "" {
		return common.NewValidationError("valkey_addr", cfg.StorageConfig.ValkeyAddr, "valkey address required for valkey backend")
	}

	return nil
}
