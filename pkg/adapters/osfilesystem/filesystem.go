// Package osfilesystem provides a filesystem implementation using the os package.
package osfilesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/imageseq/pkg/ports"
)

// FileSystem implements ports.FileSystem using the os package.
type FileSystem struct{}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// ReadFile reads the entire contents of a file.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file, creating it if necessary.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// MkdirAll creates a directory and all parent directories.
func (fs *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists checks if a file or directory exists.
func (fs *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Remove deletes a file or empty directory.
func (fs *FileSystem) Remove(path string) error {
	return os.Remove(path)
}

// ListDir lists the files in folder in sorted order. When extFilter is
// non-empty only files with that extension (case-insensitive, with or
// without a leading dot) are returned.
func (fs *FileSystem) ListDir(folder, extFilter string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimPrefix(extFilter, "."))

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if want != "" {
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
			if ext != want {
				continue
			}
		}
		paths = append(paths, filepath.Join(folder, entry.Name()))
	}

	// os.ReadDir sorts by filename, but re-sort the joined paths so the
	// ordering contract does not depend on that detail.
	sort.Strings(paths)
	return paths, nil
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
