package config

import (
	"bytes"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter implements ports.ManifestWriter.
type ManifestWriter struct {
	fs ports.FileSystem
}

// NewManifestWriter creates a new ManifestWriter.
func NewManifestWriter(fsys ports.FileSystem) *ManifestWriter {
	return &ManifestWriter{fs: fsys}
}

// Write encodes m into dir/Cargoc.toml.
func (w *ManifestWriter) Write(dir string, m *domain.ProjectManifest) error {
	data, err := EncodeManifest(m)
	if err != nil {
		return err
	}
	return w.fs.WriteFile(filepath.Join(dir, domain.ManifestFile), data)
}

// manifestFile is the encoding form of Manifest. Dependencies are always written as tables.
type manifestFile struct {
	Package      PackageDTO               `toml:"package"`
	Compiler     CompilerDTO              `toml:"compiler,omitempty"`
	Linker       LinkerDTO                `toml:"linker,omitempty"`
	Dependencies map[string]DependencyDTO `toml:"dependencies,omitempty"`
	Lib          LibDTO                   `toml:"lib,omitempty"`
}

// EncodeManifest renders m as TOML. Keys at their default value are left out.
func EncodeManifest(m *domain.ProjectManifest) ([]byte, error) {
	doc := manifestFile{
		Package: PackageDTO{
			Name:       m.Name,
			Src:        m.Sources,
			Typ:        m.Kind.String(),
			GenConfig:  m.GenerateCompileDB,
			CollectRec: m.CollectRecursive,
		},
		Compiler: CompilerDTO{
			Compiler: m.Compiler.Program,
			Flags:    m.Compiler.Flags,
			Includes: m.Compiler.Includes,
		},
		Linker: LinkerDTO{
			Linker:      m.Linker.Program,
			Flags:       m.Linker.Flags,
			Libs:        m.Linker.Libs,
			DefaultLibs: m.Linker.DefaultLibs,
		},
		Lib: LibDTO{Header: m.Headers},
	}
	if m.OutDir != domain.DefaultOutDir {
		doc.Package.OutDir = m.OutDir
	}

	if len(m.Dependencies) > 0 {
		doc.Dependencies = make(map[string]DependencyDTO, len(m.Dependencies))
		for _, dep := range m.Dependencies {
			doc.Dependencies[dep.Name] = DependencyDTO{
				Path:    dep.Path,
				Git:     dep.Git,
				Version: dep.Version,
				Leaky:   dep.Leaky,
			}
		}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to encode manifest"), "name", m.Name)
	}
	return buf.Bytes(), nil
}
