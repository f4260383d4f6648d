// Package validation checks command inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// IsValidInputFile checks that path exists and is a regular file.
func IsValidInputFile(path string) error {
	info, err := stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidInputDir checks that path exists and is a directory.
func IsValidInputDir(path string) error {
	info, err := stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}

func stat(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path must not be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("path does not exist: %s: %w", path, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("error checking path %s: %w", path, err)
	}
	return info, nil
}

// IsValidOutputFormat checks that format names a summary encoding.
func IsValidOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "json", "yaml", "yml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'json', 'yaml'", format)
	}
}

// IsValidFilePermissions rejects modes that let group or others write.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0022 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0644", mode.String())
	}
	return nil
}
