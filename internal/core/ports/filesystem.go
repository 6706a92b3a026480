package ports

import "io/fs"

// FileSystem provides the filesystem primitives the build engine needs.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns file info for path. Missing paths yield an error matching fs.ErrNotExist.
	Stat(path string) (fs.FileInfo, error)
	// ReadDir lists the entries of a directory sorted by file name.
	ReadDir(path string) ([]fs.DirEntry, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
	// Remove deletes a single file. Missing paths yield an error matching fs.ErrNotExist.
	Remove(path string) error
}
