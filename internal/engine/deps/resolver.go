// Package deps resolves the local library dependencies of a project into compile flags and
// link inputs, building stale dependencies on the way.
package deps

import (
	"context"
	"errors"
	"path/filepath"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
	"go.trai.ch/cargoc/internal/engine/sources"
	"go.trai.ch/cargoc/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// ProjectBuilder builds the project in dir. The caller has already entered dir on walk.
type ProjectBuilder interface {
	BuildProject(ctx context.Context, dir string, walk *domain.Walk) error
}

// Resolver turns dependency references into domain.Imports.
type Resolver struct {
	loader    ports.ManifestLoader
	sources   *sources.Resolver
	staleness *staleness.Checker
	logger    ports.Logger
	toolchain domain.Toolchain
}

// NewResolver creates a new dependency Resolver.
func NewResolver(
	loader ports.ManifestLoader,
	sourceResolver *sources.Resolver,
	checker *staleness.Checker,
	logger ports.Logger,
	toolchain domain.Toolchain,
) *Resolver {
	return &Resolver{
		loader:    loader,
		sources:   sourceResolver,
		staleness: checker,
		logger:    logger,
		toolchain: toolchain,
	}
}

// Resolve walks the dependencies of the project at root in declaration order. Stale
// dependencies are built through builder before their flags are merged.
func (r *Resolver) Resolve(
	ctx context.Context,
	root string,
	m *domain.ProjectManifest,
	walk *domain.Walk,
	builder ProjectBuilder,
) (domain.Imports, error) {
	var imp domain.Imports

	for _, dep := range m.Dependencies {
		if !dep.IsLocal() {
			r.logger.Warn("skipping dependency " + dep.Name + ": git dependencies are not fetched")
			continue
		}

		dir, depManifest, err := r.enter(root, dep, walk)
		if err != nil {
			return domain.Imports{}, err
		}

		lib, err := r.resolveDependency(ctx, dir, dep, depManifest, walk, builder)
		walk.Leave()
		if err != nil {
			return domain.Imports{}, err
		}

		for _, inc := range lib.exports {
			imp.CompileFlags = append(imp.CompileFlags, domain.IncludeFlag(inc))
		}
		imp.LinkInputs = append(imp.LinkInputs, lib.linkInputs...)
	}

	return imp, nil
}

// librarySurface is what a library hands to its consumers.
type librarySurface struct {
	// exports are include roots: the library's headers followed by the exports of its
	// leaky dependencies.
	exports []string
	// linkInputs are the library's artifact followed by the artifacts of every local
	// dependency below it, since an archive does not carry the objects of the archives it
	// was built against.
	linkInputs []string
}

// resolveDependency builds the dependency when stale and returns its surface rebased onto
// the consumer's root.
func (r *Resolver) resolveDependency(
	ctx context.Context,
	dir string,
	dep domain.DependencyRef,
	m *domain.ProjectManifest,
	walk *domain.Walk,
	builder ProjectBuilder,
) (librarySurface, error) {
	stale, err := r.isStale(dir, m)
	if err != nil {
		return librarySurface{}, zerr.With(err, "dependency", dep.Name)
	}
	if stale {
		r.logger.Info("building dependency " + dep.Name)
		if err := builder.BuildProject(ctx, dir, walk); err != nil {
			return librarySurface{}, err
		}
	} else {
		r.logger.Debug("dependency " + dep.Name + " is up to date")
	}

	lib, err := r.surfaceOf(dir, m, walk)
	if err != nil {
		return librarySurface{}, err
	}
	return lib.rebase(dep.Path), nil
}

// surfaceOf returns the surface of the library in dir, relative to dir.
func (r *Resolver) surfaceOf(dir string, m *domain.ProjectManifest, walk *domain.Walk) (librarySurface, error) {
	out := librarySurface{
		exports:    append([]string(nil), m.Headers...),
		linkInputs: []string{m.Target(r.toolchain).Path()},
	}

	for _, dep := range m.Dependencies {
		if !dep.IsLocal() {
			continue
		}

		depDir, depManifest, err := r.enter(dir, dep, walk)
		if err != nil {
			return librarySurface{}, err
		}
		nested, err := r.surfaceOf(depDir, depManifest, walk)
		walk.Leave()
		if err != nil {
			return librarySurface{}, err
		}

		nested = nested.rebase(dep.Path)
		out.linkInputs = append(out.linkInputs, nested.linkInputs...)
		if dep.Leaky {
			out.exports = append(out.exports, nested.exports...)
		}
	}

	return out, nil
}

func (s librarySurface) rebase(depPath string) librarySurface {
	return librarySurface{
		exports:    rebase(depPath, s.exports),
		linkInputs: rebase(depPath, s.linkInputs),
	}
}

// enter pushes the dependency onto walk and loads its manifest. The caller must Leave on
// success.
func (r *Resolver) enter(root string, dep domain.DependencyRef, walk *domain.Walk) (string, *domain.ProjectManifest, error) {
	dir, err := filepath.Abs(domain.ProjectPath(root, dep.Path))
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, "failed to resolve dependency path"), "dependency", dep.Name)
	}

	if err := walk.Enter(dir); err != nil {
		return "", nil, err
	}

	m, err := r.load(dir, dep)
	if err != nil {
		walk.Leave()
		return "", nil, err
	}
	return dir, m, nil
}

func (r *Resolver) load(dir string, dep domain.DependencyRef) (*domain.ProjectManifest, error) {
	m, err := r.loader.Load(dir)
	if err != nil {
		if errors.Is(err, domain.ErrManifestNotFound) {
			wrapped := zerr.With(zerr.Wrap(domain.ErrDependencyManifestNotFound, "failed to resolve dependencies"), "dependency", dep.Name)
			return nil, zerr.With(wrapped, "path", filepath.Join(dir, domain.ManifestFile))
		}
		return nil, zerr.With(err, "dependency", dep.Name)
	}

	var reason string
	switch {
	case !m.Kind.IsLibrary():
		reason = "target kind is " + m.Kind.String()
	case len(m.Headers) == 0:
		reason = "no exported headers"
	default:
		return m, nil
	}

	err = zerr.With(zerr.Wrap(domain.ErrDependencyNotLinkable, "failed to resolve dependencies"), "dependency", dep.Name)
	return nil, zerr.With(err, "reason", reason)
}

// isStale reports whether the dependency artifact is absent or older than its sources.
func (r *Resolver) isStale(dir string, m *domain.ProjectManifest) (bool, error) {
	set, err := r.sources.Resolve(dir, m.Sources, m.CollectRecursive)
	if err != nil {
		return false, err
	}

	inputs := make([]string, len(set))
	for i, src := range set {
		inputs[i] = domain.ProjectPath(dir, src.Path)
	}
	return r.staleness.TargetStale(domain.ProjectPath(dir, m.Target(r.toolchain).Path()), inputs)
}

func rebase(base string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = domain.ProjectPath(base, p)
	}
	return out
}
