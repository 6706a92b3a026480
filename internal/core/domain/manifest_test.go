package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestProjectManifest_CompileFlagsOrder(t *testing.T) {
	m := &domain.ProjectManifest{
		Compiler: domain.CompilerSettings{
			Program:  "clang",
			Flags:    []string{"-O2", "-Wall"},
			Includes: []string{"include", "vendor/include"},
		},
	}
	augmented := m.WithImports(domain.Imports{CompileFlags: []string{"-I../dep/include"}})

	assert.Equal(t,
		[]string{"-O2", "-Wall", "-Iinclude", "-Ivendor/include", "-I../dep/include"},
		augmented.CompileFlags(),
	)
	assert.Equal(t, []string{"-O2", "-Wall", "-Iinclude", "-Ivendor/include"}, m.CompileFlags())
}

func TestProjectManifest_WithImportsDoesNotAlias(t *testing.T) {
	m := &domain.ProjectManifest{
		Compiler: domain.CompilerSettings{Flags: make([]string, 1, 8)},
	}
	m.Compiler.Flags[0] = "-O2"

	augmented := m.WithImports(domain.Imports{LinkInputs: []string{"dep/libdep.lib"}})
	augmented.Compiler.Flags = append(augmented.Compiler.Flags, "-g")
	augmented.Compiler.Flags[0] = "-O0"

	assert.Equal(t, []string{"-O2"}, m.Compiler.Flags)
	assert.Empty(t, m.Imported.LinkInputs)
	assert.Equal(t, []string{"dep/libdep.lib"}, augmented.Imported.LinkInputs)
}

func TestProjectManifest_Target(t *testing.T) {
	tc := domain.DefaultToolchain()
	m := &domain.ProjectManifest{Name: "foo", OutDir: "build", Kind: domain.StaticArchive}

	target := m.Target(tc)
	assert.Equal(t, "lib", target.Ext)
	assert.Equal(t, "foo", target.Name)

	m.Kind = domain.SharedLibrary
	assert.Equal(t, "dll", m.Target(tc).Ext)

	m.Kind = domain.Executable
	assert.Equal(t, "exe", m.Target(tc).Ext)
}

func TestDependencyRef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		dep     domain.DependencyRef
		wantErr error
	}{
		{"local", domain.DependencyRef{Name: "a", Path: "../a"}, nil},
		{"remote", domain.DependencyRef{Name: "a", Git: "https://example.com/a.git", Version: "1.2.0"}, nil},
		{"prefixed version", domain.DependencyRef{Name: "a", Git: "https://example.com/a.git", Version: "v1.2.0"}, nil},
		{"both", domain.DependencyRef{Name: "a", Path: "../a", Git: "https://example.com/a.git"}, domain.ErrMalformedDependency},
		{"neither", domain.DependencyRef{Name: "a"}, domain.ErrMalformedDependency},
		{"bad version", domain.DependencyRef{Name: "a", Path: "../a", Version: "latest"}, domain.ErrInvalidDependencyVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dep.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			zErr, ok := err.(*zerr.Error)
			require.True(t, ok)
			assert.Equal(t, "a", zErr.Metadata()["dependency"])
		})
	}
}

func TestProjectManifest_ValidateChecksEveryDependency(t *testing.T) {
	m := &domain.ProjectManifest{
		Dependencies: []domain.DependencyRef{
			{Name: "ok", Path: "../ok"},
			{Name: "broken", Path: "../broken", Git: "https://example.com/broken.git"},
		},
	}

	err := m.Validate()
	require.ErrorIs(t, err, domain.ErrMalformedDependency)
}

func TestDefaultSystemLibs(t *testing.T) {
	assert.Contains(t, domain.DefaultSystemLibs("windows"), "-lkernel32")
	assert.Contains(t, domain.DefaultSystemLibs("linux"), "-lm")
	assert.Contains(t, domain.DefaultSystemLibs("darwin"), "-lSystem")
}
