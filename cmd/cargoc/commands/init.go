package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cargoc/internal/app"
	"go.trai.ch/cargoc/internal/core/domain"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new project in a new directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, _ := cmd.Flags().GetBool("lib")
			staticlib, _ := cmd.Flags().GetBool("staticlib")

			opts := app.InitOptions{Parent: ".", Kind: domain.Executable}
			switch {
			case lib:
				opts.Kind = domain.SharedLibrary
			case staticlib:
				opts.Kind = domain.StaticArchive
			}

			return c.app.Init(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Bool("bin", false, "Create an executable project (default)")
	cmd.Flags().Bool("lib", false, "Create a shared library project")
	cmd.Flags().Bool("staticlib", false, "Create a static library project")
	cmd.MarkFlagsMutuallyExclusive("bin", "lib", "staticlib")

	return cmd
}
