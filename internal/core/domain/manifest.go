// Package domain contains the core models of a cargoc project: its manifest, resolved
// sources, build target, dependency references and the commands synthesized from them.
package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// ManifestFile is the file name of a project manifest inside a project directory.
const ManifestFile = "Cargoc.toml"

// Manifest defaults taken when the corresponding key is absent.
const (
	DefaultName   = "a"
	DefaultOutDir = "."
	DefaultSource = "src/main.c"
)

// ProjectManifest is the typed view of a Cargoc.toml file.
// A manifest is never mutated after loading; dependency resolution produces an augmented
// copy through WithImports.
type ProjectManifest struct {
	Name              string
	OutDir            string
	Kind              TargetKind
	Sources           []string
	CollectRecursive  bool
	GenerateCompileDB bool
	Compiler          CompilerSettings
	Linker            LinkerSettings
	Dependencies      []DependencyRef
	// Headers are the include roots exported to consumers. Only library targets export them.
	Headers []string
	// Imported holds what dependency resolution merged into this project.
	Imported Imports
}

// CompilerSettings is the `[compiler]` section.
type CompilerSettings struct {
	Program  string
	Flags    []string
	Includes []string
}

// LinkerSettings is the `[linker]` section.
type LinkerSettings struct {
	Program     string
	Flags       []string
	Libs        []string
	DefaultLibs bool
}

// Imports is the result of resolving a project's dependencies.
type Imports struct {
	// CompileFlags are `-I` flags for every exported include root of every dependency.
	CompileFlags []string
	// LinkInputs are the output artifacts of the dependencies in declaration order, each
	// followed by the artifacts of the dependencies below it.
	LinkInputs []string
}

// Target returns the realized output location of the project for the given toolchain.
func (m *ProjectManifest) Target(tc Toolchain) BuildTarget {
	return BuildTarget{
		Dir:  m.OutDir,
		Name: m.Name,
		Ext:  VisitTarget[string](m.Kind, tc.Extensions),
	}
}

// WithImports returns a copy of the manifest carrying the given dependency imports.
// Slices are cloned so the receiver and the copy never share backing arrays.
func (m *ProjectManifest) WithImports(imp Imports) *ProjectManifest {
	out := *m
	out.Sources = slices.Clone(m.Sources)
	out.Compiler.Flags = slices.Clone(m.Compiler.Flags)
	out.Compiler.Includes = slices.Clone(m.Compiler.Includes)
	out.Linker.Flags = slices.Clone(m.Linker.Flags)
	out.Linker.Libs = slices.Clone(m.Linker.Libs)
	out.Dependencies = slices.Clone(m.Dependencies)
	out.Headers = slices.Clone(m.Headers)
	out.Imported = Imports{
		CompileFlags: slices.Clone(imp.CompileFlags),
		LinkInputs:   slices.Clone(imp.LinkInputs),
	}
	return &out
}

// CompileFlags returns every accumulated compiler flag in declaration order: explicit flags,
// one `-I` flag per declared include, then the flags merged from dependencies.
func (m *ProjectManifest) CompileFlags() []string {
	flags := make([]string, 0, len(m.Compiler.Flags)+len(m.Compiler.Includes)+len(m.Imported.CompileFlags))
	flags = append(flags, m.Compiler.Flags...)
	for _, inc := range m.Compiler.Includes {
		flags = append(flags, IncludeFlag(inc))
	}
	return append(flags, m.Imported.CompileFlags...)
}

// IncludeFlag renders an include path as a compiler flag.
func IncludeFlag(path string) string {
	return "-I" + path
}

// Validate checks the cross-field rules of a manifest that the parser cannot express.
func (m *ProjectManifest) Validate() error {
	for _, dep := range m.Dependencies {
		if err := dep.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DependencyRef is one entry of the `[dependencies]` section.
type DependencyRef struct {
	Name    string
	Path    string
	Git     string
	Version string
	// Leaky dependencies re-export their include roots to this project's consumers.
	Leaky bool
}

// IsLocal reports whether the dependency is a local project directory.
func (d DependencyRef) IsLocal() bool {
	return d.Path != ""
}

// Validate enforces that exactly one of Path and Git is set and that Version, when present,
// is a semantic version.
func (d DependencyRef) Validate() error {
	if (d.Path == "") == (d.Git == "") {
		return zerr.With(zerr.Wrap(ErrMalformedDependency, "invalid dependency"), "dependency", d.Name)
	}
	if d.Version != "" && !semver.IsValid(CanonicalVersion(d.Version)) {
		err := zerr.With(zerr.Wrap(ErrInvalidDependencyVersion, "invalid dependency"), "dependency", d.Name)
		return zerr.With(err, "version", d.Version)
	}
	return nil
}

// CanonicalVersion adds the "v" prefix semver expects when the manifest omits it.
func CanonicalVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
