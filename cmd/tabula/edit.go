package main

import (
	"context"
	"os"

	"github.com/aretw0/tabula/internal/cli"
	"github.com/aretw0/tabula/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the grid interactively",
	Long: `Starts a line editor over the grid. Commands are read from the terminal,
or one per line from piped input:

  echo "set 0 bloodPressure.systolic 125" | tabula edit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		var render func(string) (string, error)
		if interactive {
			tui.PrintBanner(cmd.OutOrStdout())
			render = tui.NewRenderer()
		}

		lr, err := cli.NewLineReader(ctx, os.Stdin)
		if err != nil {
			return err
		}

		repl := cli.NewREPL(app.Editor, cmd.OutOrStdout(), cmd.ErrOrStderr(), app.Config.Output.Format, render)
		if interactive {
			repl.Exec("show")
			repl.Exec("help")
		}

		if err := repl.Run(ctx, lr); err != nil {
			return err
		}
		app.Logger.Info("Editor closed", "changes", len(app.Editor.Changes()), "signal", ctx.Signal())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringP("format", "f", "table", "Output format: table, markdown or json")
}
