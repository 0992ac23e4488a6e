// Package config loads runtime settings from defaults, an optional YAML file
// and environment variables, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pdf_toolkit/pdf"
)

const (
	// DefaultMaxFileSize is the default maximum upload size (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default temporary directory
	DefaultTempDir = "./temp"

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds application configuration
type Config struct {
	Port            string `yaml:"port"`
	MaxFileSize     int64  `yaml:"max_file_size"`
	TempDir         string `yaml:"temp_dir"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	MergeOutputName string `yaml:"merge_output_name"`

	// Parity lists extra words accepted for the odd and even page filters.
	Parity struct {
		Odd  []string `yaml:"odd"`
		Even []string `yaml:"even"`
	} `yaml:"parity"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:            DefaultPort,
		MaxFileSize:     DefaultMaxFileSize,
		TempDir:         DefaultTempDir,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		MergeOutputName: pdf.DefaultMergeOutputName,
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.MaxFileSize = getEnvInt64("MAX_FILE_SIZE", cfg.MaxFileSize)
	cfg.TempDir = getEnv("TEMP_DIR", cfg.TempDir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes and checks the configuration.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("max_file_size must be positive")
	}

	if c.MergeOutputName == "" {
		c.MergeOutputName = pdf.DefaultMergeOutputName
	}
	c.MergeOutputName = pdf.EnsurePDFExt(c.MergeOutputName)

	return nil
}

// ParityTable returns the default parity words extended with the configured ones.
func (c *Config) ParityTable() pdf.ParityTable {
	return pdf.DefaultParityTable().
		With(pdf.ParityOdd, c.Parity.Odd...).
		With(pdf.ParityEven, c.Parity.Even...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
