package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.trai.ch/cargoc/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, _ []string) {
			name := color.New(color.FgCyan, color.Bold).Sprint("cargoc")
			version := color.New(color.FgGreen).Sprint(build.Version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, date: %s)\n", name, version, build.Commit, build.Date)
		},
	}
}
