package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Walk tracks the projects currently being resolved during a build, from the root project
// down to the dependency being visited. A project entering the walk twice is a cycle.
type Walk struct {
	path []string
}

// NewWalk creates an empty walk.
func NewWalk() *Walk {
	return &Walk{}
}

// Enter pushes dir onto the walk. It returns ErrDependencyCycle, with the cycle path as
// metadata, when dir is already being resolved.
func (w *Walk) Enter(dir string) error {
	if slices.Contains(w.path, dir) {
		return w.buildCycleError(dir)
	}
	w.path = append(w.path, dir)
	return nil
}

// Leave pops the most recently entered project.
func (w *Walk) Leave() {
	if len(w.path) > 0 {
		w.path = w.path[:len(w.path)-1]
	}
}

// Depth returns the number of projects currently being resolved.
func (w *Walk) Depth() int {
	return len(w.path)
}

// buildCycleError constructs an error with cycle path metadata.
func (w *Walk) buildCycleError(dir string) error {
	start := slices.Index(w.path, dir)
	cycle := append(slices.Clone(w.path[start:]), dir)
	return zerr.With(zerr.Wrap(ErrDependencyCycle, "failed to resolve dependencies"), "cycle", strings.Join(cycle, " -> "))
}
