package main

import (
	"fmt"

	"github.com/aretw0/tabula"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tabula",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tabula version %s\n", tabula.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
