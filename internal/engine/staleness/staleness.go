// Package staleness decides which artifacts are out of date by comparing modification times.
package staleness

import (
	"errors"
	"io/fs"
	"time"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/zerr"
)

// Checker compares modification times through the filesystem port.
type Checker struct {
	fs ports.FileSystem
}

// NewChecker creates a new Checker.
func NewChecker(fsys ports.FileSystem) *Checker {
	return &Checker{fs: fsys}
}

// NeedsCompile reports whether object must be rebuilt from source: the object is absent
// or strictly older than the source. Equal timestamps count as fresh.
func (c *Checker) NeedsCompile(source, object string) (bool, error) {
	return c.TargetStale(object, []string{source})
}

// TargetStale reports whether artifact is absent or strictly older than any input.
func (c *Checker) TargetStale(artifact string, inputs []string) (bool, error) {
	built, ok, err := c.modTime(artifact)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	for _, input := range inputs {
		changed, exists, err := c.modTime(input)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "failed to check staleness"), "path", input)
		}
		if built.Before(changed) {
			return true, nil
		}
	}
	return false, nil
}

// Plan returns the sources of set, in order, whose objects must be rebuilt.
// Paths in set are resolved against root.
func (c *Checker) Plan(root string, set domain.SourceSet) (domain.SourceSet, error) {
	var stale domain.SourceSet
	for _, src := range set {
		needs, err := c.NeedsCompile(domain.ProjectPath(root, src.Path), domain.ProjectPath(root, src.Object))
		if err != nil {
			return nil, err
		}
		if needs {
			stale = append(stale, src)
		}
	}
	return stale, nil
}

func (c *Checker) modTime(path string) (time.Time, bool, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	return info.ModTime(), true, nil
}
