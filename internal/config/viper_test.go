package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "2006-01-02", config.CSV.DateFormat)
	assert.Equal(t, "", config.Positions.File)
	assert.Equal(t, 4, config.Batch.Workers)
	assert.Equal(t, []string{".txt", ".TXT"}, config.Batch.Extensions)
	assert.Equal(t, "json", config.Summary.Format)
	assert.Equal(t, Default(), config)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	testEnvVars := map[string]string{
		"VSS_LOG_LEVEL":      "debug",
		"VSS_LOG_FORMAT":     "json",
		"VSS_CSV_DELIMITER":  ";",
		"VSS_POSITIONS_FILE": "/etc/vss/positions.yaml",
		"VSS_BATCH_WORKERS":  "16",
		"VSS_SUMMARY_FORMAT": "yaml",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "/etc/vss/positions.yaml", config.Positions.File)
	assert.Equal(t, 16, config.Batch.Workers)
	assert.Equal(t, "yaml", config.Summary.Format)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
  date_format: "02.01.2006"
batch:
  workers: 8
  extensions: [".rpt"]
`)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "02.01.2006", config.CSV.DateFormat)
	assert.Equal(t, 8, config.Batch.Workers)
	assert.Equal(t, []string{".rpt"}, config.Batch.Extensions)
	assert.Equal(t, "json", config.Summary.Format)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
log:
  level: "warn"
csv:
  delimiter: "|"
batch:
  workers: 8
`)
	t.Setenv("VSS_LOG_LEVEL", "error")
	t.Setenv("VSS_BATCH_WORKERS", "2")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level) // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter) // config file value
	assert.Equal(t, 2, config.Batch.Workers)   // env var wins
}

func TestInitializeConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("summary:\n  format: yaml\n"), 0600))

	config, err := InitializeConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", config.Summary.Format)

	_, err = InitializeConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_InvalidFileValue(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "batch:\n  workers: 0\n")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.workers must be between 1 and 64")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "multi-character delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "abc" },
			expectError:  "CSV delimiter must be a single character",
		},
		{
			name:         "empty delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "" },
			expectError:  "CSV delimiter must be a single character",
		},
		{
			name:         "too many workers",
			modifyConfig: func(c *Config) { c.Batch.Workers = 65 },
			expectError:  "batch.workers must be between 1 and 64",
		},
		{
			name:         "invalid summary format",
			modifyConfig: func(c *Config) { c.Summary.Format = "toml" },
			expectError:  "invalid summary format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}

	assert.NoError(t, validateConfig(Default()))
}

func TestConfig_Delimiter(t *testing.T) {
	config := Default()
	assert.Equal(t, ',', config.Delimiter())

	config.CSV.Delimiter = ";"
	assert.Equal(t, ';', config.Delimiter())

	config.CSV.Delimiter = ""
	assert.Equal(t, ',', config.Delimiter())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"text format info level", "info", "text", logrus.InfoLevel, false},
		{"json format debug level", "debug", "json", logrus.DebugLevel, true},
		{"invalid level falls back to info", "chatty", "text", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			config.Log.Level = tt.level
			config.Log.Format = tt.format

			logger := ConfigureLoggingFromConfig(config)
			require.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel, logger.Level)
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

// isolate runs the test in an empty working directory and HOME with no VSS_
// variables set, and returns that directory.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"VSS_LOG_LEVEL",
		"VSS_LOG_FORMAT",
		"VSS_CSV_DELIMITER",
		"VSS_CSV_DATE_FORMAT",
		"VSS_POSITIONS_FILE",
		"VSS_BATCH_WORKERS",
		"VSS_BATCH_EXTENSIONS",
		"VSS_SUMMARY_FORMAT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))
}
