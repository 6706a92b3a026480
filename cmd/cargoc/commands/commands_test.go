package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cargoc/cmd/cargoc/commands"
	"go.trai.ch/cargoc/internal/app"
	"go.trai.ch/cargoc/internal/build"
	"go.trai.ch/cargoc/internal/core/domain"
)

type call struct {
	method string
	dir    string
	args   []string
	name   string
	opts   app.InitOptions
}

type mockApp struct {
	calls []call
	err   error
}

func (m *mockApp) Build(_ context.Context, dir string) error {
	m.calls = append(m.calls, call{method: "build", dir: dir})
	return m.err
}

func (m *mockApp) Run(_ context.Context, dir string, args []string) error {
	m.calls = append(m.calls, call{method: "run", dir: dir, args: args})
	return m.err
}

func (m *mockApp) Clean(_ context.Context, dir string) error {
	m.calls = append(m.calls, call{method: "clean", dir: dir})
	return m.err
}

func (m *mockApp) Init(_ context.Context, name string, opts app.InitOptions) error {
	m.calls = append(m.calls, call{method: "init", name: name, opts: opts})
	return m.err
}

func execute(t *testing.T, mock *mockApp, args ...string) error {
	t.Helper()
	cli := commands.New(mock)
	cli.SetArgs(args)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	return cli.Execute(context.Background())
}

func TestCommands_ProjectDir(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected call
	}{
		{"build defaults to working directory", []string{"build"}, call{method: "build", dir: "."}},
		{"build with directory", []string{"build", "examples/hello"}, call{method: "build", dir: "examples/hello"}},
		{"clean with directory", []string{"clean", "lib"}, call{method: "clean", dir: "lib"}},
		{"run without args", []string{"run"}, call{method: "run", dir: "."}},
		{
			"run passes args after dash",
			[]string{"run", "app", "--", "--port", "8080"},
			call{method: "run", dir: "app", args: []string{"--port", "8080"}},
		},
		{
			"run with only program args",
			[]string{"run", "--", "-v"},
			call{method: "run", dir: ".", args: []string{"-v"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockApp{}
			require.NoError(t, execute(t, mock, tt.args...))
			require.Len(t, mock.calls, 1)
			assert.Equal(t, tt.expected, mock.calls[0])
		})
	}
}

func TestCommands_Run_TooManyDirectories(t *testing.T) {
	mock := &mockApp{}
	err := execute(t, mock, "run", "a", "b")
	require.Error(t, err)
	assert.Empty(t, mock.calls)
}

func TestCommands_Init(t *testing.T) {
	tests := []struct {
		name string
		flag string
		kind domain.TargetKind
	}{
		{"default executable", "", domain.Executable},
		{"explicit executable", "--bin", domain.Executable},
		{"shared library", "--lib", domain.SharedLibrary},
		{"static library", "--staticlib", domain.StaticArchive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"init", "hello"}
			if tt.flag != "" {
				args = append(args, tt.flag)
			}

			mock := &mockApp{}
			require.NoError(t, execute(t, mock, args...))
			require.Len(t, mock.calls, 1)
			assert.Equal(t, "hello", mock.calls[0].name)
			assert.Equal(t, app.InitOptions{Parent: ".", Kind: tt.kind}, mock.calls[0].opts)
		})
	}

	t.Run("conflicting flags", func(t *testing.T) {
		mock := &mockApp{}
		require.Error(t, execute(t, mock, "init", "hello", "--lib", "--staticlib"))
		assert.Empty(t, mock.calls)
	})

	t.Run("missing name", func(t *testing.T) {
		mock := &mockApp{}
		require.Error(t, execute(t, mock, "init"))
	})
}

func TestCommands_ReturnsAppError(t *testing.T) {
	mock := &mockApp{err: errors.New("simulated error")}
	err := execute(t, mock, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_VerboseHook(t *testing.T) {
	var verbose bool
	cli := commands.New(&mockApp{})
	cli.SetVerboseHook(func(v bool) { verbose = v })
	cli.SetArgs([]string{"build", "--verbose"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, verbose)
}

func TestCommands_ProgressHook(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"off by default", []string{"build"}, false},
		{"flag set", []string{"--progress", "build"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var progress, verbose bool
			cli := commands.New(&mockApp{})
			cli.SetVerboseHook(func(v bool) { verbose = v })
			cli.SetProgressHook(func(p bool) { progress = p })
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, progress)
			assert.False(t, verbose)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	color.NoColor = true

	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "cargoc version "+build.Version+" (commit: none, date: unknown)\n", buf.String())
}
