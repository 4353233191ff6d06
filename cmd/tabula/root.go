package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tabula/internal/cli"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Tabula is a type-safe in-memory grid editor",
	Long: `Tabula renders a fixed set of typed records as a grid and lets you edit
one cell at a time. Every edit is checked against the column type before it
lands; invalid input is dropped and the grid stays as it was.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./tabula.yaml if present)")
	pf.String("seed", "", "YAML or JSON file with the initial rows")
	pf.String("log-level", "off", "Log level: debug, info, warn, error or off")
	pf.Bool("log-json", false, "Write logs as JSON")
	pf.String("nan", "reject", "Unparseable numbers: 'reject' drops the edit, 'passthrough' stores NaN")
}

func setup(cmd *cobra.Command) (*cli.App, error) {
	return cli.Setup(cfgFile, cmd.Flags())
}
