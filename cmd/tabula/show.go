package main

import (
	"os"

	"github.com/aretw0/tabula/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the grid",
	Long:  `Prints the dataset as a table, a markdown table or JSON records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}

		var render func(string) (string, error)
		if term.IsTerminal(int(os.Stdout.Fd())) {
			render = tui.NewRenderer()
		}

		sheet := tui.SheetOf(app.Editor.Table())
		return tui.Render(cmd.OutOrStdout(), sheet, app.Config.Output.Format, render)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("format", "f", "table", "Output format: table, markdown or json")
}
