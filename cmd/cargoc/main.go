// Package main is the entry point for the cargoc build tool.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/cargoc/cmd/cargoc/commands"
	"go.trai.ch/cargoc/internal/app"
	_ "go.trai.ch/cargoc/internal/wiring"
)

func main() {
	os.Exit(run())
}

type verboseSetter interface {
	SetVerbose(verbose bool)
}

type progressShower interface {
	ShowProgress(out io.Writer)
}

func run() int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = components.Telemetry.Close()
	}()

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetVerboseHook(func(verbose bool) {
		if l, ok := components.Logger.(verboseSetter); ok {
			l.SetVerbose(verbose)
		}
	})
	cli.SetProgressHook(func(progress bool) {
		if t, ok := components.Telemetry.(progressShower); progress && ok {
			t.ShowProgress(os.Stderr)
		}
	})

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
