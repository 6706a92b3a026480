// Package orchestrator drives the build, run and clean lifecycle of a project.
package orchestrator

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strconv"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/cargoc/internal/engine/command"
	"go.trai.ch/cargoc/internal/engine/compiledb"
	"go.trai.ch/cargoc/internal/engine/deps"
	"go.trai.ch/cargoc/internal/engine/sources"
	"go.trai.ch/cargoc/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// Orchestrator owns the build engine of one toolchain.
type Orchestrator struct {
	loader    ports.ManifestLoader
	fs        ports.FileSystem
	executor  ports.Executor
	telemetry ports.Telemetry
	logger    ports.Logger
	toolchain domain.Toolchain

	sources     *sources.Resolver
	staleness   *staleness.Checker
	synthesizer *command.Synthesizer
	deps        *deps.Resolver
	compiledb   *compiledb.Emitter
}

// New creates an Orchestrator and the engine components it drives.
func New(
	loader ports.ManifestLoader,
	fsys ports.FileSystem,
	executor ports.Executor,
	telemetry ports.Telemetry,
	logger ports.Logger,
	toolchain domain.Toolchain,
) *Orchestrator {
	sourceResolver := sources.NewResolver(fsys)
	checker := staleness.NewChecker(fsys)
	synthesizer := command.NewSynthesizer(toolchain)

	return &Orchestrator{
		loader:      loader,
		fs:          fsys,
		executor:    executor,
		telemetry:   telemetry,
		logger:      logger,
		toolchain:   toolchain,
		sources:     sourceResolver,
		staleness:   checker,
		synthesizer: synthesizer,
		deps:        deps.NewResolver(loader, sourceResolver, checker, logger, toolchain),
		compiledb:   compiledb.NewEmitter(fsys, synthesizer, toolchain),
	}
}

// Build builds the project in root, building stale dependencies first.
func (o *Orchestrator) Build(ctx context.Context, root string) (*domain.BuildReport, error) {
	_, _, report, err := o.buildRoot(ctx, root)
	return report, err
}

// Run builds the project in root and executes its artifact with args.
// Library targets are built but not run.
func (o *Orchestrator) Run(ctx context.Context, root string, args []string) error {
	dir, m, _, err := o.buildRoot(ctx, root)
	if err != nil {
		return err
	}

	cmd, ok := o.synthesizer.Run(m, args)
	if !ok {
		o.logger.Info("nothing to run for " + m.Kind.String() + " target " + m.Name)
		return nil
	}
	cmd.Dir = dir

	o.logger.Info("running " + cmd.String())
	if err := o.executor.Execute(ctx, cmd); err != nil {
		return stepError(domain.ErrRunFailed, "failed to run "+m.Name, err)
	}
	return nil
}

// Clean removes the objects and the artifact of the project in root.
// Files that do not exist are skipped.
func (o *Orchestrator) Clean(_ context.Context, root string) error {
	m, err := o.loader.Load(root)
	if err != nil {
		return err
	}

	set, err := o.sources.Resolve(root, m.Sources, m.CollectRecursive)
	if err != nil {
		return err
	}

	paths := append(set.Objects(), m.Target(o.toolchain).Path())
	for _, p := range paths {
		if err := o.fs.Remove(domain.ProjectPath(root, p)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				o.logger.Info("nothing to remove at " + p)
				continue
			}
			wrapped := zerr.With(zerr.Wrap(domain.ErrCleanFailed, "failed to clean "+m.Name), "path", p)
			return zerr.With(wrapped, "reason", err.Error())
		}
		o.logger.Info("removed " + p)
	}
	return nil
}

func (o *Orchestrator) buildRoot(ctx context.Context, root string) (string, *domain.ProjectManifest, *domain.BuildReport, error) {
	dir, err := filepath.Abs(root)
	if err != nil {
		return "", nil, nil, zerr.With(zerr.Wrap(err, "failed to resolve project directory"), "path", root)
	}

	walk := domain.NewWalk()
	if err := walk.Enter(dir); err != nil {
		return "", nil, nil, err
	}
	defer walk.Leave()

	m, report, err := o.build(ctx, dir, walk)
	return dir, m, report, err
}

// build runs the full pipeline for the project in root, which walk has already entered.
func (o *Orchestrator) build(ctx context.Context, root string, walk *domain.Walk) (*domain.ProjectManifest, *domain.BuildReport, error) {
	m, err := o.loader.Load(root)
	if err != nil {
		return nil, nil, err
	}

	target := m.Target(o.toolchain)
	report := &domain.BuildReport{Target: target.Path()}

	imp, err := o.deps.Resolve(ctx, root, m, walk, &projectBuilder{o: o, report: report})
	if err != nil {
		return nil, nil, err
	}
	m = m.WithImports(imp)

	set, err := o.sources.Resolve(root, m.Sources, m.CollectRecursive)
	if err != nil {
		return nil, nil, err
	}

	stale, err := o.staleness.Plan(root, set)
	if err != nil {
		return nil, nil, err
	}
	o.logger.Debug(m.Name + ": " + strconv.Itoa(len(stale)) + " of " + strconv.Itoa(len(set)) + " sources out of date")

	if err := o.compile(ctx, root, m, set, stale, report); err != nil {
		return nil, nil, err
	}

	if err := o.link(ctx, root, m, set, len(stale) > 0, report); err != nil {
		return nil, nil, err
	}

	if m.GenerateCompileDB {
		written, err := o.compiledb.Emit(root, m, set)
		if err != nil {
			return nil, nil, err
		}
		if written {
			o.logger.Debug("wrote compile database for " + m.Name)
		}
	}

	return m, report, nil
}

func (o *Orchestrator) compile(
	ctx context.Context,
	root string,
	m *domain.ProjectManifest,
	set, stale domain.SourceSet,
	report *domain.BuildReport,
) error {
	pending := make(map[string]bool, len(stale))
	for _, src := range stale {
		pending[src.Path] = true
	}

	for _, src := range set {
		stepCtx, vertex := o.telemetry.Record(ctx, "compile "+src.Path)

		if !pending[src.Path] {
			vertex.Cached()
			vertex.Complete(nil)
			report.Steps = append(report.Steps, domain.Step{Kind: domain.StepCompile, Name: src.Path, Status: domain.StepCached})
			continue
		}

		cmd := o.synthesizer.Compile(m, src)
		cmd.Dir = root
		o.logger.Info("compiling " + cmd.String())

		if err := o.executor.Execute(stepCtx, cmd); err != nil {
			vertex.Complete(err)
			return zerr.With(stepError(domain.ErrCompileFailed, "failed to compile "+src.Path, err), "source", src.Path)
		}
		vertex.Complete(nil)
		report.Steps = append(report.Steps, domain.Step{Kind: domain.StepCompile, Name: src.Path, Status: domain.StepCompleted})
	}
	return nil
}

// link relinks when an object was recompiled or the artifact is older than its inputs.
func (o *Orchestrator) link(
	ctx context.Context,
	root string,
	m *domain.ProjectManifest,
	set domain.SourceSet,
	recompiled bool,
	report *domain.BuildReport,
) error {
	target := m.Target(o.toolchain)
	stepCtx, vertex := o.telemetry.Record(ctx, "link "+target.Path())

	relink := recompiled
	if !relink {
		inputs := make([]string, 0, len(set)+len(m.Imported.LinkInputs))
		for _, obj := range set.Objects() {
			inputs = append(inputs, domain.ProjectPath(root, obj))
		}
		for _, in := range m.Imported.LinkInputs {
			inputs = append(inputs, domain.ProjectPath(root, in))
		}

		stale, err := o.staleness.TargetStale(domain.ProjectPath(root, target.Path()), inputs)
		if err != nil {
			vertex.Complete(err)
			return err
		}
		relink = stale
	}

	if !relink {
		vertex.Cached()
		vertex.Complete(nil)
		report.Steps = append(report.Steps, domain.Step{Kind: domain.StepLink, Name: target.Path(), Status: domain.StepCached})
		o.logger.Debug(target.Path() + " is up to date")
		return nil
	}

	if err := o.fs.MkdirAll(domain.ProjectPath(root, target.Dir)); err != nil {
		vertex.Complete(err)
		return err
	}

	cmd := o.synthesizer.Link(m, set)
	cmd.Dir = root
	o.logger.Info("linking " + cmd.String())

	if err := o.executor.Execute(stepCtx, cmd); err != nil {
		vertex.Complete(err)
		return zerr.With(stepError(domain.ErrLinkFailed, "failed to link "+target.Path(), err), "target", target.Path())
	}
	vertex.Complete(nil)
	report.Steps = append(report.Steps, domain.Step{Kind: domain.StepLink, Name: target.Path(), Status: domain.StepCompleted})
	return nil
}

// projectBuilder builds stale dependencies for the dependency resolver and records them in
// the consumer's report.
type projectBuilder struct {
	o      *Orchestrator
	report *domain.BuildReport
}

func (b *projectBuilder) BuildProject(ctx context.Context, dir string, walk *domain.Walk) error {
	ctx, vertex := b.o.telemetry.Record(ctx, "dependency "+dir)
	_, _, err := b.o.build(ctx, dir, walk)
	vertex.Complete(err)
	if err != nil {
		return err
	}
	b.report.Steps = append(b.report.Steps, domain.Step{Kind: domain.StepDependency, Name: dir, Status: domain.StepCompleted})
	return nil
}

// stepError wraps sentinel and carries over the metadata of the process failure, such as the
// exit code and the command line.
func stepError(sentinel error, msg string, cause error) error {
	err := zerr.Wrap(sentinel, msg)

	var zErr *zerr.Error
	if errors.As(cause, &zErr) {
		for k, v := range zErr.Metadata() {
			err = zerr.With(err, k, v)
		}
		return err
	}
	return zerr.With(err, "reason", cause.Error())
}
