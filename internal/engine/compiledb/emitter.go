// Package compiledb writes the compile database consumed by editors and language servers.
package compiledb

import (
	"encoding/json"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/cargoc/internal/engine/command"
	"go.trai.ch/zerr"
)

// Emitter serializes one CompileRecord per resolved source.
type Emitter struct {
	fs          ports.FileSystem
	synthesizer *command.Synthesizer
	fileName    string
}

// NewEmitter creates an Emitter writing to the toolchain's compile database file.
func NewEmitter(fsys ports.FileSystem, synthesizer *command.Synthesizer, toolchain domain.Toolchain) *Emitter {
	name := toolchain.CompileDatabase
	if name == "" {
		name = domain.DefaultCompileDatabase
	}
	return &Emitter{
		fs:          fsys,
		synthesizer: synthesizer,
		fileName:    name,
	}
}

// Records returns the compile records of set in source order.
func (e *Emitter) Records(root string, m *domain.ProjectManifest, set domain.SourceSet) ([]domain.CompileRecord, error) {
	dir, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve project directory"), "path", root)
	}

	args := e.synthesizer.Arguments(m)
	records := make([]domain.CompileRecord, len(set))
	for i, src := range set {
		records[i] = domain.CompileRecord{
			Directory: dir,
			File:      src.Path,
			Output:    src.Object,
			Arguments: args,
		}
	}
	return records, nil
}

// Emit writes the compile database into root. An existing database with identical content is
// left untouched; the returned flag reports whether the file was written.
func (e *Emitter) Emit(root string, m *domain.ProjectManifest, set domain.SourceSet) (bool, error) {
	path := filepath.Join(root, e.fileName)

	records, err := e.Records(root, m, set)
	if err != nil {
		return false, err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return false, zerr.With(zerr.Wrap(domain.ErrCompileDatabaseWriteFailed, err.Error()), "path", path)
	}
	data = append(data, '\n')

	if existing, err := e.fs.ReadFile(path); err == nil && xxhash.Sum64(existing) == xxhash.Sum64(data) {
		return false, nil
	}

	if err := e.fs.WriteFile(path, data); err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrCompileDatabaseWriteFailed, "failed to emit compile database"), "path", path)
		return false, zerr.With(wrapped, "reason", err.Error())
	}
	return true, nil
}
