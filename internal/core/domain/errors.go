package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when a project directory has no Cargoc.toml.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestReadFailed is returned when the manifest exists but cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest is not valid TOML or has mistyped keys.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrUnknownTargetKind is returned when `typ` is not one of bin, dynlib or staticlib.
	ErrUnknownTargetKind = zerr.New("unknown target kind")

	// ErrSourceNotFound is returned when a source entry does not exist.
	ErrSourceNotFound = zerr.New("source path not found")

	// ErrUnknownSourceExtension is returned when a source file is neither compilable nor skippable.
	ErrUnknownSourceExtension = zerr.New("unknown source extension")

	// ErrSourceReadFailed is returned when a source directory cannot be listed.
	ErrSourceReadFailed = zerr.New("failed to read source directory")

	// ErrMalformedDependency is returned when a dependency sets both or neither of path and git.
	ErrMalformedDependency = zerr.New("dependency must set exactly one of path or git")

	// ErrInvalidDependencyVersion is returned when a dependency version is not a semantic version.
	ErrInvalidDependencyVersion = zerr.New("invalid dependency version")

	// ErrDependencyManifestNotFound is returned when a local dependency has no manifest.
	ErrDependencyManifestNotFound = zerr.New("dependency manifest not found")

	// ErrDependencyNotLinkable is returned when a dependency is an executable or exports no headers.
	ErrDependencyNotLinkable = zerr.New("not usable as a dependency")

	// ErrDependencyCycle is returned when a project depends on itself, directly or transitively.
	ErrDependencyCycle = zerr.New("dependency cycle detected")

	// ErrEmptyCommand is returned when a command has no program, e.g. an empty compiler setting.
	ErrEmptyCommand = zerr.New("no program to run")

	// ErrCompileFailed is returned when the compiler exits with a non-zero status.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrLinkFailed is returned when the linker or archiver exits with a non-zero status.
	ErrLinkFailed = zerr.New("link failed")

	// ErrRunFailed is returned when the built executable exits with a non-zero status.
	ErrRunFailed = zerr.New("program failed")

	// ErrCleanFailed is returned when a build artifact cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove artifact")

	// ErrCompileDatabaseWriteFailed is returned when compile_commands.json cannot be written.
	ErrCompileDatabaseWriteFailed = zerr.New("failed to write compile database")

	// ErrSettingsReadFailed is returned when the toolchain settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings")

	// ErrSettingsParseFailed is returned when the toolchain settings file is not valid YAML.
	ErrSettingsParseFailed = zerr.New("failed to parse settings")

	// ErrProjectExists is returned by init when the target directory already exists.
	ErrProjectExists = zerr.New("project directory already exists")

	// ErrInvalidProjectName is returned by init for empty names or names containing separators.
	ErrInvalidProjectName = zerr.New("invalid project name")
)
