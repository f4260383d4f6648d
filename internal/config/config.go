// Package config provides functionality for loading environment variables and
// process-wide logging set up before the configuration is read.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	// Global logger instance used before the container is built
	Logger = logrus.New()
)

// ConfigureLogging sets up logging based on LOG_LEVEL and LOG_FORMAT and
// returns the configured logger
func ConfigureLogging() *logrus.Logger {
	// Configure log level
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info" // Default log level
	}

	// Parse the log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", logLevelStr)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	// Configure log format
	logFormat := os.Getenv("LOG_FORMAT")
	if strings.ToLower(logFormat) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		// Default to text formatter
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() {
	once.Do(func() {
		loadEnvFrom(".")
	})
}

// loadEnvFrom loads dir/.env, or the .env of its parent directory. It
// reports the file loaded, "" when none was found or it failed to load.
func loadEnvFrom(dir string) string {
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// Try to find .env in parent directory (project root)
		envFile = filepath.Join(dir, "..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			Logger.Debug("No .env file found, using environment variables")
			return ""
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		Logger.Warnf("Error loading .env file: %v", err)
		return ""
	}
	Logger.Debugf("Loaded environment variables from %s", envFile)

	// Configure logging after loading environment variables
	ConfigureLogging()
	return envFile
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
