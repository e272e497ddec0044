// Package textstore reads and writes UTF-8 text files relative to a
// configured data directory, and exports processed results as JSON.
package textstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store resolves file names against a data directory. Absolute paths are
// used as-is.
type Store struct {
	dataDir      string
	processedDir string
}

// New creates a store rooted at dataDir, with JSON exports going to
// processedDir.
func New(dataDir, processedDir string) *Store {
	return &Store{dataDir: dataDir, processedDir: processedDir}
}

// Resolve maps a file name to its on-disk path. Absolute names pass through
// untouched; relative names are joined onto the data directory.
func (s *Store) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dataDir, name)
}

// ReadFile reads a text file by name.
func (s *Store) ReadFile(name string) (string, error) {
	path := s.Resolve(name)
	slog.Debug("reading text file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("textstore: reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes content to a text file by name, creating parent
// directories as needed.
func (s *Store) WriteFile(name, content string) error {
	path := s.Resolve(name)
	slog.Debug("writing text file", "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("textstore: creating dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("textstore: writing %s: %w", path, err)
	}
	return nil
}

// ExportJSON marshals v with indentation and writes it under the processed
// directory (or to name directly when name is absolute). It returns the
// path written.
func (s *Store) ExportJSON(v any, name string) (string, error) {
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(s.processedDir, name)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("textstore: marshaling %s: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("textstore: creating dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("textstore: writing %s: %w", path, err)
	}

	slog.Debug("exported JSON", "path", path)
	return path, nil
}
