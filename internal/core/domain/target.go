package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// TargetKind is the output category of a project.
// The zero value is Executable, which is also the manifest default.
type TargetKind uint8

const (
	// Executable produces a runnable program (`typ = "bin"`).
	Executable TargetKind = iota
	// SharedLibrary produces a dynamically linked library (`typ = "dynlib"`).
	SharedLibrary
	// StaticArchive produces an object archive (`typ = "staticlib"`).
	StaticArchive
)

// ParseTargetKind maps the manifest spelling of a target kind to its TargetKind.
func ParseTargetKind(s string) (TargetKind, error) {
	switch s {
	case "bin":
		return Executable, nil
	case "dynlib":
		return SharedLibrary, nil
	case "staticlib":
		return StaticArchive, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrUnknownTargetKind, "invalid manifest"), "typ", s)
	}
}

// String returns the manifest spelling of the kind.
func (k TargetKind) String() string {
	return VisitTarget[string](k, kindNames{})
}

// IsLibrary reports whether the kind can be consumed as a dependency.
func (k TargetKind) IsLibrary() bool {
	return VisitTarget[bool](k, libraryKinds{})
}

// TargetVisitor handles each target kind. Implementations must cover all three variants,
// which keeps every kind-dependent decision exhaustive.
type TargetVisitor[T any] interface {
	Executable() T
	SharedLibrary() T
	StaticArchive() T
}

// VisitTarget dispatches k to the matching visitor method.
func VisitTarget[T any](k TargetKind, v TargetVisitor[T]) T {
	switch k {
	case Executable:
		return v.Executable()
	case SharedLibrary:
		return v.SharedLibrary()
	case StaticArchive:
		return v.StaticArchive()
	}
	panic(fmt.Sprintf("domain: invalid target kind %d", k))
}

type kindNames struct{}

func (kindNames) Executable() string    { return "bin" }
func (kindNames) SharedLibrary() string { return "dynlib" }
func (kindNames) StaticArchive() string { return "staticlib" }

type libraryKinds struct{}

func (libraryKinds) Executable() bool    { return false }
func (libraryKinds) SharedLibrary() bool { return true }
func (libraryKinds) StaticArchive() bool { return true }

// BuildTarget is the realized output location of a project.
type BuildTarget struct {
	Dir  string
	Name string
	Ext  string
}

// Path renders `<dir>/<name>.<ext>`. The directory is kept as written so that a target in
// "." stays runnable as "./name.ext".
func (t BuildTarget) Path() string {
	dir := strings.TrimRight(t.Dir, `/\`)
	switch {
	case dir == "" && t.Dir != "":
		return t.Dir[:1] + t.fileName()
	case dir == "":
		dir = "."
	}
	return dir + string(filepath.Separator) + t.fileName()
}

func (t BuildTarget) fileName() string {
	if t.Ext == "" {
		return t.Name
	}
	return t.Name + "." + t.Ext
}
