package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cargoc/internal/adapters/config"
	fsadapter "go.trai.ch/cargoc/internal/adapters/fs"
	"go.trai.ch/cargoc/internal/adapters/telemetry/progrock"
	"go.trai.ch/cargoc/internal/app"
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports/mocks"
	"go.trai.ch/cargoc/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type testEnv struct {
	app      *app.App
	logger   *mocks.MockLogger
	executor *mocks.MockExecutor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	executor := mocks.NewMockExecutor(ctrl)
	tc := domain.DefaultToolchain()
	fsys := fsadapter.New()

	recorder := progrock.New()

	orch := orchestrator.New(config.NewManifestLoader(logger, tc), fsys, executor, recorder, logger, tc)
	return &testEnv{
		app:      app.New(orch, config.NewManifestWriter(fsys), fsys, logger, recorder),
		logger:   logger,
		executor: executor,
	}
}

// produce creates the output file of a compile or link command.
func produce(_ context.Context, cmd domain.Command) error {
	for i, arg := range cmd.Args {
		if arg == "-o" {
			return os.WriteFile(domain.ProjectPath(cmd.Dir, cmd.Args[i+1]), nil, 0o600)
		}
	}
	return nil
}

func TestApp_Build(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ManifestFile), []byte("[package]\nname = \"hello\"\n"), 0o600))
	past := time.Now().Add(-time.Hour)
	main := filepath.Join(root, "src", "main.c")
	require.NoError(t, os.WriteFile(main, []byte("int main(void) { return 0; }\n"), 0o600))
	require.NoError(t, os.Chtimes(main, past, past))

	env := newTestEnv(t)
	env.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(produce).Times(2)
	env.logger.EXPECT().Info("built ./hello.exe (1 compiled, 2 steps, 0 cached)").Times(1)
	env.logger.EXPECT().Info("./hello.exe is up to date (2 steps cached)").Times(1)
	env.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	env.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	require.NoError(t, env.app.Build(context.Background(), root))
	require.NoError(t, env.app.Build(context.Background(), root))
}

func TestApp_Build_Failure(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ManifestFile), []byte("[package]\nsrc = [\"src/missing.c\"]\n"), 0o600))

	env := newTestEnv(t)

	err := env.app.Build(context.Background(), root)
	require.ErrorIs(t, err, domain.ErrSourceNotFound)
	assert.Contains(t, err.Error(), "build failed: failed to resolve sources")
}

func TestApp_Build_FailedStepsInError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ManifestFile), []byte("[package]\nname = \"hello\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.c"), []byte("int main(void) {\n"), 0o600))

	env := newTestEnv(t)
	env.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(errors.New("exit status 1")).Times(1)
	env.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	env.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	err := env.app.Build(context.Background(), root)
	require.ErrorIs(t, err, domain.ErrCompileFailed)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, 1, zErr.Metadata()["failed_steps"])
}

func TestApp_Run_And_Clean_MissingManifest(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	err := env.app.Run(context.Background(), dir, nil)
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
	assert.Contains(t, err.Error(), "run failed")

	err = env.app.Clean(context.Background(), dir)
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
	assert.Contains(t, err.Error(), "clean failed")
}

func TestApp_Init_Executable(t *testing.T) {
	parent := t.TempDir()
	env := newTestEnv(t)
	env.logger.EXPECT().Info("created bin project hello").Times(1)

	require.NoError(t, env.app.Init(context.Background(), "hello", app.InitOptions{Parent: parent}))

	main, err := os.ReadFile(filepath.Join(parent, "hello", "src", "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main(int argc, char **argv) {\n\treturn 0;\n}\n", string(main))

	m, err := config.NewManifestLoader(env.logger, domain.DefaultToolchain()).Load(filepath.Join(parent, "hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", m.Name)
	assert.Equal(t, domain.Executable, m.Kind)
	assert.Equal(t, []string{"src/main.c"}, m.Sources)
}

func TestApp_Init_Library(t *testing.T) {
	tests := []struct {
		name string
		kind domain.TargetKind
	}{
		{"dynamic library", domain.SharedLibrary},
		{"static library", domain.StaticArchive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := t.TempDir()
			env := newTestEnv(t)
			env.logger.EXPECT().Info(gomock.Any()).Times(1)

			require.NoError(t, env.app.Init(context.Background(), "my-net", app.InitOptions{Parent: parent, Kind: tt.kind}))

			dir := filepath.Join(parent, "my-net")
			header, err := os.ReadFile(filepath.Join(dir, "include", "my-net.h"))
			require.NoError(t, err)
			assert.Equal(t, "#ifndef MY_NET_H\n#define MY_NET_H\n\n#endif\n", string(header))

			lib, err := os.ReadFile(filepath.Join(dir, "src", "lib.c"))
			require.NoError(t, err)
			assert.Equal(t, "#include \"my-net.h\"\n", string(lib))

			m, err := config.NewManifestLoader(env.logger, domain.DefaultToolchain()).Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, m.Kind)
			assert.Equal(t, []string{"include"}, m.Headers)
			assert.Equal(t, []string{"-Iinclude"}, m.CompileFlags())
		})
	}
}

func TestApp_Init_Errors(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "taken"), 0o750))

	tests := []struct {
		name     string
		project  string
		expected error
	}{
		{"existing directory", "taken", domain.ErrProjectExists},
		{"empty name", "", domain.ErrInvalidProjectName},
		{"path separator", "a/b", domain.ErrInvalidProjectName},
		{"parent reference", "..", domain.ErrInvalidProjectName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			err := env.app.Init(context.Background(), tt.project, app.InitOptions{Parent: parent})
			require.ErrorIs(t, err, tt.expected)

			_, ok := err.(*zerr.Error)
			assert.True(t, ok)
		})
	}
}
