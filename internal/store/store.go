// Package store provides loading and saving of field-position tables as YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/parsererror"
	"fjacquet/vss-csv/internal/validation"

	"gopkg.in/yaml.v3"
)

// DefaultPositionsFile is the name searched for when no file is configured
// explicitly through FindConfigFile.
const DefaultPositionsFile = "positions.yaml"

// PositionLoader supplies the position table used by the parser.
type PositionLoader interface {
	Load() (models.PositionTable, error)
}

// PositionStore manages loading and saving of position tables. The YAML
// document maps report type -> field name -> {position, direction,
// max_length}; entries override the built-in layout field by field.
type PositionStore struct {
	File   string
	logger logging.Logger
}

// NewPositionStore creates a store for file. An empty file makes Load return
// the built-in layout.
func NewPositionStore(file string, logger logging.Logger) *PositionStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &PositionStore{
		File:   file,
		logger: logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *PositionStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/vss-csv/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "vss-csv", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load returns the built-in layout merged with the configured file, after
// validation. A configured file that cannot be found is an error.
func (s *PositionStore) Load() (models.PositionTable, error) {
	defaults := models.DefaultPositions()
	if s.File == "" {
		s.logger.Debug("Using built-in field positions")
		return defaults, nil
	}

	filePath, err := s.FindConfigFile(s.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("positions file not found: %s: %w", s.File, err)
		}
		return nil, fmt.Errorf("error resolving positions file: %w", err)
	}

	if info, err := os.Stat(filePath); err == nil {
		if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
			s.logger.WithError(err).Warn("Positions file is writable by others",
				logging.F(logging.FieldFile, filePath))
		}
	}

	override, err := ReadTable(filePath)
	if err != nil {
		return nil, err
	}

	merged := defaults.Merge(override)
	if err := merged.Validate(); err != nil {
		return nil, &parsererror.ValidationError{FilePath: filePath, Reason: err.Error()}
	}

	for _, rt := range models.SupportedReportTypes {
		if len(override[rt]) == 0 {
			continue
		}
		s.logger.Debug("Field positions overridden",
			logging.F(logging.FieldReportType, rt.String()),
			logging.F("fields", override.FieldNames(rt)))
	}
	s.logger.Debug("Loaded field positions",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, countPositions(override)))
	return merged, nil
}

// Save writes table to path, creating the parent directory if needed.
func (s *PositionStore) Save(path string, table models.PositionTable) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := Marshal(table)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing positions file: %w", err)
	}

	s.logger.Debug("Saved field positions",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, countPositions(table)))
	return nil
}

// ReadTable parses a YAML position table without merging or validating it.
func ReadTable(path string) (models.PositionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading positions file: %w", err)
	}

	var table models.PositionTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("error parsing positions file %s: %w", path, err)
	}
	if table == nil {
		table = models.PositionTable{}
	}
	return table, nil
}

// Marshal encodes table as YAML.
func Marshal(table models.PositionTable) ([]byte, error) {
	data, err := yaml.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("error marshaling positions: %w", err)
	}
	return data, nil
}

func countPositions(table models.PositionTable) int {
	n := 0
	for _, fields := range table {
		n += len(fields)
	}
	return n
}
