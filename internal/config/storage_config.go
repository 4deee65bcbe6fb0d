package config

// StorageConfig holds configuration for the durable scan record store.
type StorageConfig struct {
	Backend    string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,storagebackend"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	ValkeyAddr string `json:"valkey_addr,omitempty" yaml:"valkey_addr,omitempty" validate:"omitempty,hostname_port"`
}

// NewDefaultStorageConfig creates a new StorageConfig with default values.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:    "sqlite",
		SQLitePath: "data/repoguard.db",
		ValkeyAddr: "localhost:6379",
	}
}
