// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration,
// for example VSS_LOG_LEVEL or VSS_BATCH_WORKERS.
const EnvPrefix = "VSS"

// Worker bounds for batch parsing.
const (
	MinWorkers = 1
	MaxWorkers = 64
)

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls the CSV writer.
type CSVConfig struct {
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// PositionsConfig points at an optional YAML field-position table. An empty
// File selects the built-in layout.
type PositionsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// BatchConfig controls directory processing.
type BatchConfig struct {
	Workers    int      `mapstructure:"workers" yaml:"workers"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// SummaryConfig selects the summary output encoding.
type SummaryConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	CSV       CSVConfig       `mapstructure:"csv" yaml:"csv"`
	Positions PositionsConfig `mapstructure:"positions" yaml:"positions"`
	Batch     BatchConfig     `mapstructure:"batch" yaml:"batch"`
	Summary   SummaryConfig   `mapstructure:"summary" yaml:"summary"`
}

// InitializeConfig loads defaults, then config.yaml from $HOME/.vss-csv,
// .vss-csv or the working directory, then VSS_ environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFile("")
}

// InitializeConfigFile behaves like InitializeConfig but reads configFile
// instead of searching the default locations. A missing explicit file is an
// error; a missing default file is not.
func InitializeConfigFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.vss-csv")
		v.AddConfigPath(".vss-csv")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicit)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration produced by the defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Unmarshalling literal defaults cannot fail.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "2006-01-02")

	// Position table defaults
	v.SetDefault("positions.file", "")

	// Batch defaults
	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.extensions", []string{".txt", ".TXT"})

	// Summary defaults
	v.SetDefault("summary.format", "json")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Batch.Workers < MinWorkers || config.Batch.Workers > MaxWorkers {
		return fmt.Errorf("batch.workers must be between %d and %d, got: %d", MinWorkers, MaxWorkers, config.Batch.Workers)
	}

	if config.Summary.Format != "json" && config.Summary.Format != "yaml" {
		return fmt.Errorf("invalid summary format: %s (must be 'json' or 'yaml')", config.Summary.Format)
	}

	return nil
}

// Validate checks the configuration after command-line overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// Delimiter returns the CSV delimiter as a rune, ',' when unset.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
