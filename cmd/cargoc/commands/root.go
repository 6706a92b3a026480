// Package commands implements the CLI commands for the cargoc build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cargoc/internal/app"
	"go.trai.ch/cargoc/internal/build"
)

// CLI represents the command line interface for cargoc.
type CLI struct {
	app          Application
	rootCmd      *cobra.Command
	verboseHook  func(bool)
	progressHook func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, dir string) error
	Run(ctx context.Context, dir string, args []string) error
	Clean(ctx context.Context, dir string) error
	Init(ctx context.Context, name string, opts app.InitOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cargoc",
		Short:         "A minimal build tool for C and C++ projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().Bool("progress", false, "Print a line to stderr for every finished build step")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.applyGlobalFlags

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetVerboseHook registers fn to be called with the value of the verbose flag before any
// command runs.
func (c *CLI) SetVerboseHook(fn func(bool)) {
	c.verboseHook = fn
}

// SetProgressHook registers fn to be called with the value of the progress flag before any
// command runs.
func (c *CLI) SetProgressHook(fn func(bool)) {
	c.progressHook = fn
}

func (c *CLI) applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	hooks := []struct {
		flag string
		fn   func(bool)
	}{
		{"verbose", c.verboseHook},
		{"progress", c.progressHook},
	}
	for _, h := range hooks {
		if h.fn == nil {
			continue
		}
		value, err := cmd.Flags().GetBool(h.flag)
		if err != nil {
			return err
		}
		h.fn(value)
	}
	return nil
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// projectDir returns the project directory argument, defaulting to the working directory.
func projectDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
