package domain

import (
	"path/filepath"
	"strings"
)

// ObjectExt is the extension of compiled object files.
const ObjectExt = ".o"

// SourceClass is the result of classifying a file by its extension.
type SourceClass int

const (
	// SourceUnknown files abort source resolution.
	SourceUnknown SourceClass = iota
	// SourceCompilable files are handed to the compiler.
	SourceCompilable
	// SourceSkipped files (headers, objects, binaries) are silently ignored.
	SourceSkipped
)

var sourceClasses = map[string]SourceClass{
	"c":     SourceCompilable,
	"cc":    SourceCompilable,
	"cpp":   SourceCompilable,
	"cxx":   SourceCompilable,
	"c++":   SourceCompilable,
	"h":     SourceSkipped,
	"hh":    SourceSkipped,
	"hpp":   SourceSkipped,
	"hxx":   SourceSkipped,
	"inl":   SourceSkipped,
	"o":     SourceSkipped,
	"obj":   SourceSkipped,
	"a":     SourceSkipped,
	"lib":   SourceSkipped,
	"so":    SourceSkipped,
	"dll":   SourceSkipped,
	"dylib": SourceSkipped,
	"exe":   SourceSkipped,
	"out":   SourceSkipped,
}

// ClassifySource classifies path by its extension, which is matched case-insensitively.
func ClassifySource(path string) SourceClass {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return sourceClasses[ext]
}

// SourceFile is a compilable source and the object it compiles to.
// Both paths are relative to the project root unless the manifest used absolute paths.
type SourceFile struct {
	Path   string
	Object string
}

// NewSourceFile derives the object path of a source: same stem, object extension.
func NewSourceFile(path string) SourceFile {
	return SourceFile{
		Path:   path,
		Object: strings.TrimSuffix(path, filepath.Ext(path)) + ObjectExt,
	}
}

// SourceSet is the ordered list of resolved sources of a project.
type SourceSet []SourceFile

// Paths returns the source paths in order.
func (s SourceSet) Paths() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Path
	}
	return out
}

// Objects returns the object paths in order.
func (s SourceSet) Objects() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Object
	}
	return out
}

// ProjectPath resolves a manifest path against the project root unless it is absolute.
func ProjectPath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
