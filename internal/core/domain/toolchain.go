package domain

import "runtime"

// DefaultCompileDatabase is the file name of the compile database in a project root.
const DefaultCompileDatabase = "compile_commands.json"

// Toolchain holds the per-user settings that are not part of a project manifest.
type Toolchain struct {
	Compiler        string
	Linker          string
	Archiver        string
	Extensions      Extensions
	SystemLibs      []string
	CompileDatabase string
}

// Extensions maps each target kind to the file extension of its artifact.
// It implements TargetVisitor so that an extension exists for every kind.
type Extensions struct {
	ExecutableExt    string
	SharedLibraryExt string
	StaticArchiveExt string
}

// Executable returns the executable extension.
func (e Extensions) Executable() string { return e.ExecutableExt }

// SharedLibrary returns the shared library extension.
func (e Extensions) SharedLibrary() string { return e.SharedLibraryExt }

// StaticArchive returns the static archive extension.
func (e Extensions) StaticArchive() string { return e.StaticArchiveExt }

// DefaultToolchain returns the settings used when no settings file exists.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Compiler: "clang",
		Linker:   "clang",
		Archiver: "ar",
		Extensions: Extensions{
			ExecutableExt:    "exe",
			SharedLibraryExt: "dll",
			StaticArchiveExt: "lib",
		},
		SystemLibs:      DefaultSystemLibs(runtime.GOOS),
		CompileDatabase: DefaultCompileDatabase,
	}
}

// DefaultSystemLibs returns the system libraries injected by `default_libs = true` on goos.
func DefaultSystemLibs(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			"-lkernel32", "-luser32", "-lgdi32", "-lwinspool", "-lcomdlg32",
			"-ladvapi32", "-lshell32", "-lole32", "-loleaut32", "-luuid",
			"-lodbc32", "-lodbccp32",
		}
	case "darwin":
		return []string{"-lSystem", "-lm"}
	default:
		return []string{"-lm", "-lpthread", "-ldl"}
	}
}
