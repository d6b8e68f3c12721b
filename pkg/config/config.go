// Package config loads the tool configuration from a YAML file, with
// environment overrides for the settings that vary per deployment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rowlog/rowlog/pkg/rowlog"
)

// Config represents the complete tool configuration
type Config struct {
	Writer  WriterConfig  `yaml:"writer"`
	Export  ExportConfig  `yaml:"export"`
	Archive ArchiveConfig `yaml:"archive"`
	Logging LoggingConfig `yaml:"logging"`
}

// WriterConfig contains row writer settings
type WriterConfig struct {
	HeaderPolicy   string `yaml:"header_policy"`
	Destination    string `yaml:"destination"`
	FilePath       string `yaml:"file_path"`
	FloatPrecision int    `yaml:"float_precision"`
}

// ExportConfig contains XLSX export settings
type ExportConfig struct {
	SheetName string `yaml:"sheet_name"`
}

// ArchiveConfig contains Alibaba Cloud OSS archive settings
type ArchiveConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	Bucket          string        `yaml:"bucket"`
	AccessKeyID     string        `yaml:"access_key_id"`
	AccessKeySecret string        `yaml:"access_key_secret"`
	Prefix          string        `yaml:"prefix"`
	PartSize        int64         `yaml:"part_size"`
	SignedURLExpiry time.Duration `yaml:"signed_url_expiry"`
	MaxRetries      int           `yaml:"max_retries"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"`
	Output        string `yaml:"output"`
	EnableCallers bool   `yaml:"enable_callers"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Writer: WriterConfig{
			HeaderPolicy:   "once",
			Destination:    "file",
			FilePath:       "rows.csv",
			FloatPrecision: rowlog.DefaultFloatPrecision,
		},
		Export: ExportConfig{
			SheetName: "Sheet1",
		},
		Archive: ArchiveConfig{
			Prefix:          "rowlogs",
			PartSize:        10 * 1024 * 1024, // 10MB
			SignedURLExpiry: 7 * 24 * time.Hour,
			MaxRetries:      3,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "json",
			Output:        "stderr",
			EnableCallers: false,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults rather than an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	if val := os.Getenv("ROWLOG_FILE"); val != "" {
		c.Writer.FilePath = val
	}
	if val := os.Getenv("ROWLOG_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv("OSS_ENDPOINT"); val != "" {
		c.Archive.Endpoint = val
	}
	if val := os.Getenv("OSS_BUCKET"); val != "" {
		c.Archive.Bucket = val
	}
	if val := os.Getenv("OSS_ACCESS_KEY_ID"); val != "" {
		c.Archive.AccessKeyID = val
	}
	if val := os.Getenv("OSS_ACCESS_KEY_SECRET"); val != "" {
		c.Archive.AccessKeySecret = val
	}
}

// Validate checks if the configuration is valid. Archive credentials are
// only required once an archive upload is actually attempted, so they are
// not checked here.
func (c *Config) Validate() error {
	if _, err := rowlog.ParseHeaderPolicy(c.Writer.HeaderPolicy); err != nil {
		return err
	}
	dest, err := rowlog.ParseDestination(c.Writer.Destination)
	if err != nil {
		return err
	}
	if dest != rowlog.DestConsoleOnly && c.Writer.FilePath == "" {
		return fmt.Errorf("writer file_path is required for destination %q", c.Writer.Destination)
	}
	if c.Writer.FloatPrecision < 0 {
		return fmt.Errorf("writer float_precision cannot be negative: %d", c.Writer.FloatPrecision)
	}
	if c.Archive.MaxRetries < 0 {
		return fmt.Errorf("archive max_retries cannot be negative: %d", c.Archive.MaxRetries)
	}
	return nil
}

// WriterRowlogConfig converts the writer section into a rowlog.Config.
// The string policies are parsed here so that flag overrides applied
// after Load are still checked.
func (c *Config) WriterRowlogConfig() (rowlog.Config, error) {
	policy, err := rowlog.ParseHeaderPolicy(c.Writer.HeaderPolicy)
	if err != nil {
		return rowlog.Config{}, err
	}
	dest, err := rowlog.ParseDestination(c.Writer.Destination)
	if err != nil {
		return rowlog.Config{}, err
	}
	return rowlog.Config{
		Header:         policy,
		Destination:    dest,
		FilePath:       c.Writer.FilePath,
		FloatPrecision: c.Writer.FloatPrecision,
	}, nil
}
