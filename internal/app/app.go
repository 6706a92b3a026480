// Package app implements the application layer for cargoc.
package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/cargoc/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	orchestrator *orchestrator.Orchestrator
	writer       ports.ManifestWriter
	fs           ports.FileSystem
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(
	orch *orchestrator.Orchestrator,
	writer ports.ManifestWriter,
	fsys ports.FileSystem,
	log ports.Logger,
	tel ports.Telemetry,
) *App {
	return &App{
		orchestrator: orch,
		writer:       writer,
		fs:           fsys,
		logger:       log,
		telemetry:    tel,
	}
}

// Build builds the project in dir and logs a summary of the recorded steps.
func (a *App) Build(ctx context.Context, dir string) error {
	before := a.telemetry.Counts()
	report, err := a.orchestrator.Build(ctx, dir)
	steps := a.telemetry.Counts().Since(before)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "build failed"), "failed_steps", steps.Failed)
	}

	compiled := len(report.Compiled())
	if compiled == 0 && !report.Linked() {
		a.logger.Info(report.Target + " is up to date (" + strconv.Itoa(steps.Cached) + " steps cached)")
		return nil
	}
	a.logger.Info("built " + report.Target + " (" + strconv.Itoa(compiled) + " compiled, " +
		strconv.Itoa(steps.Total) + " steps, " + strconv.Itoa(steps.Cached) + " cached)")
	return nil
}

// Run builds the project in dir and runs it with args.
func (a *App) Run(ctx context.Context, dir string, args []string) error {
	if err := a.orchestrator.Run(ctx, dir, args); err != nil {
		return zerr.Wrap(err, "run failed")
	}
	return nil
}

// Clean removes the build outputs of the project in dir.
func (a *App) Clean(ctx context.Context, dir string) error {
	if err := a.orchestrator.Clean(ctx, dir); err != nil {
		return zerr.Wrap(err, "clean failed")
	}
	return nil
}

// InitOptions configures the project created by Init.
type InitOptions struct {
	// Parent is the directory the project directory is created in.
	Parent string
	Kind   domain.TargetKind
}

// Init scaffolds a new project named name: a manifest and a minimal source tree.
func (a *App) Init(_ context.Context, name string, opts InitOptions) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidProjectName, "failed to create project"), "name", name)
	}

	dir := filepath.Join(opts.Parent, name)
	if _, err := a.fs.Stat(dir); err == nil {
		return zerr.With(zerr.Wrap(domain.ErrProjectExists, "failed to create project"), "path", dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to create project"), "path", dir)
	}

	m, files := scaffold(name, opts.Kind)

	if err := a.fs.MkdirAll(dir); err != nil {
		return err
	}
	if err := a.writer.Write(dir, m); err != nil {
		return err
	}
	for _, f := range files {
		path := filepath.Join(dir, f.path)
		if err := a.fs.MkdirAll(filepath.Dir(path)); err != nil {
			return err
		}
		if err := a.fs.WriteFile(path, []byte(f.content)); err != nil {
			return err
		}
	}

	a.logger.Info("created " + opts.Kind.String() + " project " + name)
	return nil
}
