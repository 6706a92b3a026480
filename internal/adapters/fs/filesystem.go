// Package fs provides the operating system filesystem adapter.
package fs

import (
	"io/fs"
	"os"

	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on top of the os package.
type FileSystem struct{}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// Stat returns file info for path.
func (f *FileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadDir lists the entries of a directory sorted by file name.
func (f *FileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// ReadFile reads the whole file at path.
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // paths come from the project manifest
}

// WriteFile replaces the content of the file at path.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}

// MkdirAll creates a directory and any missing parents.
func (f *FileSystem) MkdirAll(path string) error {
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}

// Remove deletes a single file.
func (f *FileSystem) Remove(path string) error {
	return os.Remove(path)
}
