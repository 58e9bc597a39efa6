// Package config provides the unified configuration system for datakit.
// It defines a single Config structure covering everything a connector needs
// to resolve a data asset to a concrete location: the data root and per-layer
// roots for local storage, and per-kind connection settings for remote
// storage.
//
// Connectors only require that, by the time they are constructed, the
// configuration needed to resolve a location is already available. The
// recommended flow is:
//
//	cfg := config.New()
//	if err := cfg.ApplyEnv(); err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/datakit-dev/datakit/pkg/catalog"
	"github.com/datakit-dev/datakit/pkg/errors"
)

// Environment variable names recognized by ApplyEnv. Cloud SDK credentials
// (AWS_*, GOOGLE_APPLICATION_CREDENTIALS) are consumed by the SDKs directly
// and are not duplicated here.
const (
	EnvDataRoot = "DATAKIT_DATA_ROOT"
	EnvLogLevel = "DATAKIT_LOG_LEVEL"
)

// Config is the single configuration structure shared by all connectors.
type Config struct {
	// DataRoot is the directory under which layer roots live for local
	// storage, and the object-key prefix segment for remote storage.
	DataRoot string `yaml:"data_root" json:"data_root"`

	// LayerRoots optionally overrides the root directory of individual
	// layers. Unset layers resolve to <data_root>/<layer>.
	LayerRoots map[catalog.Layer]string `yaml:"layer_roots" json:"layer_roots"`

	// Logging configures the global logger.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Connections holds per-kind connection settings, keyed by connector
	// kind (e.g. "s3", "gcs"). The local kind needs no entry.
	Connections map[string]ConnectionConfig `yaml:"connections" json:"connections"`
}

// LoggingConfig mirrors the logger package configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
	Encoding    string `yaml:"encoding" json:"encoding"`
}

// ConnectionConfig holds the settings one remote connector kind needs.
// Unused fields are ignored by kinds that do not need them.
type ConnectionConfig struct {
	// Bucket names the object-storage bucket
	Bucket string `yaml:"bucket" json:"bucket"`
	// Prefix is prepended to every object key, before the data root
	Prefix string `yaml:"prefix" json:"prefix"`
	// Region is the cloud region (s3)
	Region string `yaml:"region" json:"region"`
	// Endpoint overrides the service endpoint, for S3-compatible stores
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	// ProjectID is the cloud project (gcs)
	ProjectID string `yaml:"project_id" json:"project_id"`
	// CredentialsFile points at a service-account key file (gcs)
	CredentialsFile string `yaml:"credentials_file" json:"credentials_file"`
	// Credentials holds extra kind-specific settings (access keys etc.)
	Credentials map[string]string `yaml:"credentials" json:"credentials"`
}

// New creates a Config with sensible defaults.
func New() *Config {
	return &Config{
		DataRoot:   "data",
		LayerRoots: make(map[catalog.Layer]string),
		Logging: LoggingConfig{
			Level:       "info",
			Development: false,
			Encoding:    "json",
		},
		Connections: make(map[string]ConnectionConfig),
	}
}

// LoadFile reads a Config from a YAML file, starting from defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file")
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse config file")
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if root := os.Getenv(EnvDataRoot); root != "" {
		c.DataRoot = root
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.DataRoot == "" {
		return errors.New(errors.ErrorTypeConfig, "data_root is required")
	}
	for layer := range c.LayerRoots {
		if !layer.Valid() {
			return errors.Newf(errors.ErrorTypeConfig, "unknown layer %q in layer_roots", layer)
		}
	}
	return nil
}

// LayerRoot resolves the root directory for a layer: the per-layer override
// when set, <data_root>/<layer> otherwise.
func (c *Config) LayerRoot(layer catalog.Layer) string {
	if root, ok := c.LayerRoots[layer]; ok && root != "" {
		return root
	}
	return filepath.Join(c.DataRoot, string(layer))
}

// Connection returns the connection settings for a kind. The zero value is
// returned for kinds with no entry.
func (c *Config) Connection(kind string) ConnectionConfig {
	return c.Connections[kind]
}
