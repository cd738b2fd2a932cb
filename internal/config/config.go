package config

import (
	"os"
	"strconv"
	"strings"

	"colcompare/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Compare  CompareConfig `yaml:"compare"`
}

// CompareConfig holds the knobs of a single comparison run
type CompareConfig struct {
	Sheet1       string `yaml:"sheet1"`
	Sheet2       string `yaml:"sheet2"`
	ExactColumns bool   `yaml:"exact_columns"`
	StripStyles  bool   `yaml:"strip_styles"`
	KeyLabel     string `yaml:"key_label"`
	TempDir      string `yaml:"temp_dir"`
	SourceLabel1 string `yaml:"source_label1"`
	SourceLabel2 string `yaml:"source_label2"`
	Format       string `yaml:"format"`
}

// Output formats for console reports
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Default returns configuration with built-in defaults only
func Default() *Config {
	return &Config{
		LogLevel: "INFO",
		Compare: CompareConfig{
			SourceLabel1: "File 1",
			SourceLabel2: "File 2",
			Format:       FormatText,
		},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := Default()
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)
	config.Compare = loadCompareConfig(config.Compare)

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// LoadFile overlays a YAML job file on top of base. Keys absent from the
// file keep the value from base.
func LoadFile(base *Config, path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(path, err)
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	merged := *base
	if err := yaml.Unmarshal(raw, &merged); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "invalid config file %s", path))
	}
	merged.Compare.Format = strings.ToLower(merged.Compare.Format)

	if err := Validate(&merged); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &merged, nil
}

func loadCompareConfig(defaults CompareConfig) CompareConfig {
	return CompareConfig{
		Sheet1:       getEnvOrDefault("COMPARE_SHEET1", defaults.Sheet1),
		Sheet2:       getEnvOrDefault("COMPARE_SHEET2", defaults.Sheet2),
		ExactColumns: getEnvBoolOrDefault("COMPARE_EXACT_COLUMNS", defaults.ExactColumns),
		StripStyles:  getEnvBoolOrDefault("COMPARE_STRIP_STYLES", defaults.StripStyles),
		KeyLabel:     getEnvOrDefault("COMPARE_KEY_LABEL", defaults.KeyLabel),
		TempDir:      getEnvOrDefault("COMPARE_TEMP_DIR", defaults.TempDir),
		SourceLabel1: getEnvOrDefault("COMPARE_SOURCE_LABEL1", defaults.SourceLabel1),
		SourceLabel2: getEnvOrDefault("COMPARE_SOURCE_LABEL2", defaults.SourceLabel2),
		Format:       strings.ToLower(getEnvOrDefault("COMPARE_FORMAT", defaults.Format)),
	}
}

// Validate checks values that would make a comparison ambiguous
func Validate(config *Config) error {
	c := config.Compare
	if strings.TrimSpace(c.SourceLabel1) == "" || strings.TrimSpace(c.SourceLabel2) == "" {
		return errors.ConfigInvalid("source labels must not be empty")
	}
	if c.SourceLabel1 == c.SourceLabel2 {
		return errors.ConfigInvalid("source labels must differ")
	}
	switch c.Format {
	case FormatText, FormatMarkdown:
	default:
		return errors.ConfigInvalid("unsupported format: " + c.Format)
	}
	if c.TempDir != "" {
		info, err := os.Stat(c.TempDir)
		if err != nil || !info.IsDir() {
			return errors.ConfigInvalid("temp dir is not a directory: " + c.TempDir)
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
