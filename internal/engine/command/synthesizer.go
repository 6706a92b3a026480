// Package command turns a project manifest into the literal compile, link and run
// invocations handed to the executor.
package command

import (
	"go.trai.ch/cargoc/internal/core/domain"
)

// Synthesizer builds commands for one toolchain.
// Commands are relative to the project root; callers set Command.Dir.
type Synthesizer struct {
	toolchain domain.Toolchain
}

// NewSynthesizer creates a new Synthesizer.
func NewSynthesizer(toolchain domain.Toolchain) *Synthesizer {
	return &Synthesizer{toolchain: toolchain}
}

// Compile returns `<compiler> -c <source> -o <object> <flags...>`.
func (s *Synthesizer) Compile(m *domain.ProjectManifest, src domain.SourceFile) domain.Command {
	args := []string{"-c", src.Path, "-o", src.Object}
	return domain.Command{
		Program: m.Compiler.Program,
		Args:    append(args, m.CompileFlags()...),
	}
}

// Link returns the command producing the project's artifact from the objects of set.
func (s *Synthesizer) Link(m *domain.ProjectManifest, set domain.SourceSet) domain.Command {
	return domain.VisitTarget[domain.Command](m.Kind, linkCommand{
		linker:   m.Linker.Program,
		archiver: s.toolchain.Archiver,
		output:   m.Target(s.toolchain).Path(),
		objects:  set.Objects(),
		flags:    s.LinkerFlags(m),
	})
}

// Run returns the command executing the built artifact. Library targets have nothing to
// run and report false.
func (s *Synthesizer) Run(m *domain.ProjectManifest, args []string) (domain.Command, bool) {
	if m.Kind != domain.Executable {
		return domain.Command{}, false
	}
	return domain.Command{
		Program:     m.Target(s.toolchain).Path(),
		Args:        args,
		Interactive: true,
	}, true
}

// Arguments returns the compiler followed by every accumulated compile flag.
func (s *Synthesizer) Arguments(m *domain.ProjectManifest) []string {
	return append([]string{m.Compiler.Program}, m.CompileFlags()...)
}

// LinkerFlags returns explicit flags, explicit libs, dependency artifacts and, when
// requested, the system libraries.
func (s *Synthesizer) LinkerFlags(m *domain.ProjectManifest) []string {
	var flags []string
	flags = append(flags, m.Linker.Flags...)
	flags = append(flags, m.Linker.Libs...)
	flags = append(flags, m.Imported.LinkInputs...)
	if m.Linker.DefaultLibs {
		flags = append(flags, s.toolchain.SystemLibs...)
	}
	return flags
}

type linkCommand struct {
	linker   string
	archiver string
	output   string
	objects  []string
	flags    []string
}

func (l linkCommand) Executable() domain.Command {
	return l.link()
}

func (l linkCommand) SharedLibrary() domain.Command {
	return l.link("-shared")
}

// StaticArchive never receives linker flags.
func (l linkCommand) StaticArchive() domain.Command {
	args := append([]string{"-rcs", l.output}, l.objects...)
	return domain.Command{Program: l.archiver, Args: args}
}

func (l linkCommand) link(leading ...string) domain.Command {
	args := append(leading, "-o", l.output)
	args = append(args, l.objects...)
	args = append(args, l.flags...)
	return domain.Command{Program: l.linker, Args: args}
}
