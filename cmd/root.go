package cmd

import (
	"github.com/grovetools/core/cli"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for recfix.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"recfix",
		"Repair media invite records so they match the events API schema",
	)

	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSampleCmd())

	return rootCmd
}
