package main

import (
	"fmt"

	"github.com/aretw0/tabula/internal/cli"
	"github.com/aretw0/tabula/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [seed-file]",
	Short: "Check a seed file against the column schema",
	Long:  `Reports every field of the first non-conforming row. Uses --seed when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		path := cfg.Seed
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no seed file given")
		}

		policy, err := cfg.NaNPolicy()
		if err != nil {
			return err
		}
		return cli.Validate(cmd.OutOrStdout(), path, policy)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
