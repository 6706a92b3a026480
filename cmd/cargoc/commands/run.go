package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [dir] [-- args...]",
		Short: "Build the project and run the resulting executable",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirArgs, programArgs := args, []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				dirArgs, programArgs = args[:dash], args[dash:]
			}
			if len(dirArgs) > 1 {
				return zerr.With(zerr.New("run accepts at most one project directory"), "args", len(dirArgs))
			}
			return c.app.Run(cmd.Context(), projectDir(dirArgs), programArgs)
		},
	}
}
