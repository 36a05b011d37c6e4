package cmd

import (
	"encoding/json"
	"fmt"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/recfix/internal/fixer"
	"github.com/spf13/cobra"
)

var ulogSample = grovelogging.NewUnifiedLogger("recfix.cmd.sample")

func newSampleCmd() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the id of one record for API verification",
		Long:  "Reads a single record from the table and prints its id as JSON, for use with the events API test script.",
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

			id, found, err := fixer.SampleID(ctx, s)
			if err != nil {
				return fmt.Errorf("failed to read sample record: %w", err)
			}
			if !found {
				return fmt.Errorf("no records found in %s", s.Name())
			}

			output := struct {
				ID         string `json:"id"`
				Store      string `json:"store"`
				VerifyHint string `json:"verify_hint,omitempty"`
			}{
				ID:         id,
				Store:      s.Name(),
				VerifyHint: cfg.Fix.VerifyHint,
			}

			jsonData, err := json.Marshal(output)
			if err != nil {
				return fmt.Errorf("failed to marshal sample to JSON: %w", err)
			}

			ulogSample.Info("Sample record").
				Field("id", id).
				Field("store", s.Name()).
				Pretty(string(jsonData) + "\n").
				PrettyOnly().
				Emit()
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
