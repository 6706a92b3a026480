// Package config provides the manifest and toolchain settings loaders for cargoc.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestLoader = (*ManifestLoader)(nil)

// ManifestLoader implements ports.ManifestLoader for Cargoc.toml files.
type ManifestLoader struct {
	logger    ports.Logger
	toolchain domain.Toolchain
}

// NewManifestLoader creates a loader that fills missing programs from the toolchain.
func NewManifestLoader(logger ports.Logger, toolchain domain.Toolchain) *ManifestLoader {
	return &ManifestLoader{
		logger:    logger,
		toolchain: toolchain,
	}
}

// Load reads dir/Cargoc.toml, applies defaults and validates the result.
func (l *ManifestLoader) Load(dir string) (*domain.ProjectManifest, error) {
	path := filepath.Join(dir, domain.ManifestFile)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "failed to load manifest"), "path", path)
		}
		return nil, manifestError(domain.ErrManifestReadFailed, path, err)
	}

	var doc Manifest
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, manifestError(domain.ErrManifestParseFailed, path, err)
	}
	m, err := l.build(path, &doc, &meta)
	if err != nil {
		return nil, err
	}

	for _, key := range meta.Undecoded() {
		l.logger.Warn("unknown manifest key " + key.String() + " in " + path)
	}

	if err := m.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return m, nil
}

func (l *ManifestLoader) build(path string, doc *Manifest, meta *toml.MetaData) (*domain.ProjectManifest, error) {
	m := &domain.ProjectManifest{
		Name:              orDefault(doc.Package.Name, domain.DefaultName),
		OutDir:            orDefault(doc.Package.OutDir, domain.DefaultOutDir),
		Sources:           doc.Package.Src,
		CollectRecursive:  doc.Package.CollectRec,
		GenerateCompileDB: doc.Package.GenConfig,
		Compiler: domain.CompilerSettings{
			Program:  orDefault(doc.Compiler.Compiler, l.toolchain.Compiler),
			Flags:    doc.Compiler.Flags,
			Includes: doc.Compiler.Includes,
		},
		Linker: domain.LinkerSettings{
			Program:     orDefault(doc.Linker.Linker, l.toolchain.Linker),
			Flags:       doc.Linker.Flags,
			Libs:        doc.Linker.Libs,
			DefaultLibs: doc.Linker.DefaultLibs,
		},
		Headers: doc.Lib.Header,
	}

	if !meta.IsDefined("package", "src") {
		m.Sources = []string{domain.DefaultSource}
	}

	kind, err := domain.ParseTargetKind(orDefault(doc.Package.Typ, domain.Executable.String()))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	m.Kind = kind

	if !kind.IsLibrary() && len(m.Headers) > 0 {
		l.logger.Warn("ignoring [lib] header on executable target " + m.Name)
		m.Headers = nil
	}

	deps, err := decodeDependencies(path, doc.Dependencies, meta)
	if err != nil {
		return nil, err
	}
	m.Dependencies = deps

	return m, nil
}

// decodeDependencies decodes every dependency in name order. An entry is either a table
// or a bare string naming a local path.
func decodeDependencies(path string, raw map[string]toml.Primitive, meta *toml.MetaData) ([]domain.DependencyRef, error) {
	names := dependencyNames(raw)
	deps := make([]domain.DependencyRef, 0, len(names))
	for _, name := range names {
		var shorthand string
		if err := meta.PrimitiveDecode(raw[name], &shorthand); err == nil {
			deps = append(deps, domain.DependencyRef{Name: name, Path: shorthand})
			continue
		}

		var dto DependencyDTO
		if err := meta.PrimitiveDecode(raw[name], &dto); err != nil {
			return nil, zerr.With(manifestError(domain.ErrManifestParseFailed, path, err), "dependency", name)
		}
		deps = append(deps, domain.DependencyRef{
			Name:    name,
			Path:    dto.Path,
			Git:     dto.Git,
			Version: dto.Version,
			Leaky:   dto.Leaky,
		})
	}
	return deps, nil
}

// dependencyNames returns the names of raw in sorted order.
func dependencyNames(raw map[string]toml.Primitive) []string {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func manifestError(sentinel error, path string, cause error) error {
	err := zerr.With(zerr.Wrap(sentinel, "failed to load manifest"), "path", path)
	return zerr.With(err, "reason", cause.Error())
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
