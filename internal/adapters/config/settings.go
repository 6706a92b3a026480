package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SettingsEnv names the environment variable that overrides the settings file location.
const SettingsEnv = "CARGOC_CONFIG"

// SettingsPath returns the location of the toolchain settings file, or "" when the user
// configuration directory cannot be determined.
func SettingsPath() string {
	if p := os.Getenv(SettingsEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cargoc", "config.yaml")
}

// LoadToolchain reads the settings file at path on top of domain.DefaultToolchain.
// A missing file, or an empty path, yields the defaults.
func LoadToolchain(path string) (domain.Toolchain, error) {
	tc := domain.DefaultToolchain()
	if path == "" {
		return tc, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tc, nil
		}
		wrapped := zerr.With(zerr.Wrap(domain.ErrSettingsReadFailed, "failed to load settings"), "path", path)
		return tc, zerr.With(wrapped, "reason", err.Error())
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrSettingsParseFailed, "failed to load settings"), "path", path)
		return tc, zerr.With(wrapped, "reason", err.Error())
	}

	return s.apply(tc), nil
}

// apply overlays every setting that is present onto tc.
func (s *Settings) apply(tc domain.Toolchain) domain.Toolchain {
	tc.Compiler = orDefault(s.Compiler, tc.Compiler)
	tc.Linker = orDefault(s.Linker, tc.Linker)
	tc.Archiver = orDefault(s.Archiver, tc.Archiver)
	tc.CompileDatabase = orDefault(s.CompileDatabase, tc.CompileDatabase)
	tc.Extensions.ExecutableExt = orDefault(s.Extensions.Executable, tc.Extensions.ExecutableExt)
	tc.Extensions.SharedLibraryExt = orDefault(s.Extensions.SharedLibrary, tc.Extensions.SharedLibraryExt)
	tc.Extensions.StaticArchiveExt = orDefault(s.Extensions.StaticArchive, tc.Extensions.StaticArchiveExt)
	if s.SystemLibs != nil {
		tc.SystemLibs = s.SystemLibs
	}
	return tc
}
