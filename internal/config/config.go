//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-datalab.
// Values come from (lowest to highest precedence) built-in defaults, the
// YAML config file, DATALAB_* environment variables (optionally loaded
// from a .env file) and CLI flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "DATALAB"

// Config holds all configuration for pgedge-datalab.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// LogFormat is auto, pretty or json.
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Seed fixes the random stream of a generation run.
	Seed uint64 `mapstructure:"seed" yaml:"seed"`

	// Scale is the named scale (small, medium, large).
	Scale string `mapstructure:"scale" yaml:"scale"`

	// ScaleFactor overrides Scale with a custom multiplier when > 0.
	ScaleFactor float64 `mapstructure:"scale_factor" yaml:"scale_factor"`

	// Store selects and locates the relational store.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Populate holds configuration for the populate commands.
	Populate PopulateConfig `mapstructure:"populate" yaml:"populate"`
}

// StoreConfig holds store configuration.
type StoreConfig struct {
	// Driver is sqlite, postgres or mysql.
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Dir is the directory holding one SQLite file per module.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// DSN is the PostgreSQL or MySQL connection string.
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

// PopulateConfig holds configuration for population runs.
type PopulateConfig struct {
	// BatchSize is the maximum number of rows per INSERT statement.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// ProgressInterval is how often to log insert progress (in rows).
	ProgressInterval int64 `mapstructure:"progress_interval" yaml:"progress_interval"`

	// Regenerate clears existing rows of a domain before populating it.
	Regenerate bool `mapstructure:"regenerate" yaml:"regenerate"`

	// Modules limits populate-all to the named modules (empty = all).
	Modules []string `mapstructure:"modules" yaml:"modules"`

	// ExportDir, when set, receives a Parquet copy of every committed table.
	ExportDir string `mapstructure:"export_dir" yaml:"export_dir"`
}

// Drivers lists the supported store drivers.
var Drivers = []string{"sqlite", "postgres", "mysql"}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "auto",
		Seed:      42,
		Scale:     "small",
		Store: StoreConfig{
			Driver: "sqlite",
			Dir:    "data",
		},
		Populate: PopulateConfig{
			BatchSize:        1000,
			ProgressInterval: 100000,
		},
	}
}

// envKeys are bound to DATALAB_* variables; viper only unmarshals
// environment values for keys it knows about.
var envKeys = []string{
	"log_level",
	"log_format",
	"seed",
	"scale",
	"scale_factor",
	"store.driver",
	"store.dir",
	"store.dsn",
	"populate.batch_size",
	"populate.progress_interval",
	"populate.regenerate",
	"populate.export_dir",
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from config files and the environment.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-datalab.yaml
// 3. ~/.config/pgedge-datalab/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-datalab")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-datalab"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ResolveScale returns the effective scale.
func (c *Config) ResolveScale() (datagen.Scale, error) {
	if c.ScaleFactor > 0 {
		return datagen.CustomScale(c.ScaleFactor), nil
	}
	return datagen.ParseScale(c.Scale)
}

// Validate checks that the store and scale settings are usable.
func (c *Config) Validate() error {
	known := false
	for _, d := range Drivers {
		if c.Store.Driver == d {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("store.driver must be one of %s", strings.Join(Drivers, ", "))
	}
	switch c.Store.Driver {
	case "sqlite":
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir is required for sqlite")
		}
	default:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for %s", c.Store.Driver)
		}
	}
	if c.ScaleFactor < 0 {
		return fmt.Errorf("scale_factor must not be negative")
	}
	// Written negated so NaN is rejected too.
	if !(c.ScaleFactor <= datagen.MaxFactor) {
		return fmt.Errorf("scale_factor must be at most %g", datagen.MaxFactor)
	}
	if _, err := c.ResolveScale(); err != nil {
		return err
	}
	return nil
}

// ValidatePopulate checks configuration required for the populate commands.
func (c *Config) ValidatePopulate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Populate.BatchSize < 1 {
		return fmt.Errorf("populate.batch_size must be at least 1")
	}
	if c.Populate.ProgressInterval < 1 {
		return fmt.Errorf("populate.progress_interval must be at least 1")
	}
	return nil
}

// Dump writes the configuration as YAML.
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
