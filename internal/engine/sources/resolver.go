// Package sources expands manifest source entries into an ordered source set.
package sources

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver resolves source entries against the filesystem.
type Resolver struct {
	fs ports.FileSystem
}

// NewResolver creates a new Resolver.
func NewResolver(fsys ports.FileSystem) *Resolver {
	return &Resolver{fs: fsys}
}

// Resolve expands entries, each relative to root, into compilable sources.
//
// A file entry must have a compilable or skippable extension. A directory entry contributes
// its immediate children, descending into sub-directories only when recursive is set.
// Returned paths keep the spelling of the manifest so commands run from root stay short.
func (r *Resolver) Resolve(root string, entries []string, recursive bool) (domain.SourceSet, error) {
	var set domain.SourceSet
	for _, entry := range entries {
		info, err := r.fs.Stat(domain.ProjectPath(root, entry))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "failed to resolve sources"), "path", entry)
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve sources"), "path", entry)
		}

		if info.IsDir() {
			set, err = r.collectDir(set, root, entry, recursive)
		} else {
			set, err = collectFile(set, entry)
		}
		if err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (r *Resolver) collectDir(set domain.SourceSet, root, dir string, recursive bool) (domain.SourceSet, error) {
	entries, err := r.fs.ReadDir(domain.ProjectPath(root, dir))
	if err != nil {
		err = zerr.With(zerr.Wrap(domain.ErrSourceReadFailed, "failed to resolve sources"), "path", dir)
		return nil, err
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		child := filepath.Join(dir, e.Name())

		if e.IsDir() {
			if !recursive {
				continue
			}
			if set, err = r.collectDir(set, root, child, recursive); err != nil {
				return nil, err
			}
			continue
		}

		if set, err = collectFile(set, child); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func collectFile(set domain.SourceSet, path string) (domain.SourceSet, error) {
	switch domain.ClassifySource(path) {
	case domain.SourceCompilable:
		return append(set, domain.NewSourceFile(path)), nil
	case domain.SourceSkipped:
		return set, nil
	default:
		err := zerr.With(zerr.Wrap(domain.ErrUnknownSourceExtension, "failed to resolve sources"), "path", path)
		return nil, zerr.With(err, "extension", filepath.Ext(path))
	}
}
