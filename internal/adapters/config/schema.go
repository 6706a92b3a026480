package config

import "github.com/BurntSushi/toml"

// Manifest represents the structure of a Cargoc.toml file.
// Empty keys are omitted when a manifest is encoded.
type Manifest struct {
	Package      PackageDTO                `toml:"package"`
	Compiler     CompilerDTO               `toml:"compiler,omitempty"`
	Linker       LinkerDTO                 `toml:"linker,omitempty"`
	Dependencies map[string]toml.Primitive `toml:"dependencies,omitempty"`
	Lib          LibDTO                    `toml:"lib,omitempty"`
}

// PackageDTO represents the `[package]` section.
type PackageDTO struct {
	Name       string   `toml:"name,omitempty"`
	OutDir     string   `toml:"outdir,omitempty"`
	Src        []string `toml:"src,omitempty"`
	Typ        string   `toml:"typ,omitempty"`
	GenConfig  bool     `toml:"gen_config,omitempty"`
	CollectRec bool     `toml:"collect_rec,omitempty"`
}

// CompilerDTO represents the `[compiler]` section.
type CompilerDTO struct {
	Compiler string   `toml:"compiler,omitempty"`
	Flags    []string `toml:"flags,omitempty"`
	Includes []string `toml:"includes,omitempty"`
}

// LinkerDTO represents the `[linker]` section.
type LinkerDTO struct {
	Linker      string   `toml:"linker,omitempty"`
	Flags       []string `toml:"flags,omitempty"`
	Libs        []string `toml:"libs,omitempty"`
	DefaultLibs bool     `toml:"default_libs,omitempty"`
}

// DependencyDTO represents one `[dependencies]` entry in table form.
// The shorthand `name = "path"` is also accepted.
type DependencyDTO struct {
	Path    string `toml:"path,omitempty"`
	Git     string `toml:"git,omitempty"`
	Version string `toml:"version,omitempty"`
	Leaky   bool   `toml:"leaky,omitempty"`
}

// LibDTO represents the `[lib]` section.
type LibDTO struct {
	Header []string `toml:"header,omitempty"`
}

// Settings represents the structure of the per-user config.yaml file.
type Settings struct {
	Compiler        string        `yaml:"compiler"`
	Linker          string        `yaml:"linker"`
	Archiver        string        `yaml:"archiver"`
	Extensions      ExtensionsDTO `yaml:"extensions"`
	SystemLibs      []string      `yaml:"system_libs"`
	CompileDatabase string        `yaml:"compile_database"`
}

// ExtensionsDTO represents the `extensions` mapping of the settings file.
type ExtensionsDTO struct {
	Executable    string `yaml:"executable"`
	SharedLibrary string `yaml:"shared_library"`
	StaticArchive string `yaml:"static_archive"`
}
