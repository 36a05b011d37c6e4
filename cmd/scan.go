package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/recfix/internal/display"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var flags storeFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan [flags]",
		Short: "List the records in the table without changing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := flags.load()
			if err != nil {
				return err
			}
			s, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}

			items, err := s.Scan(ctx)
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", s.Name(), err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(items, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal items to JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(items) == 0 {
				fmt.Println("No records found in the table")
				return nil
			}
			fmt.Printf("Found %d records in %s\n\n", len(items), s.Name())
			display.PrintItemsTable(items, os.Stdout)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the raw items in JSON format")

	return cmd
}
