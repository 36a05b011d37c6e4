package cmd

import (
	"fmt"
	"os"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/recfix/internal/display"
	"github.com/grovetools/recfix/internal/event"
	"github.com/grovetools/recfix/internal/fixer"
	"github.com/grovetools/recfix/internal/prompt"
	"github.com/spf13/cobra"
)

var ulogFix = grovelogging.NewUnifiedLogger("recfix.cmd.fix")

func newFixCmd() *cobra.Command {
	var flags storeFlags
	var yes, dryRun, showDiff, uniqueIDs, removeStale bool
	var backupPath string

	cmd := &cobra.Command{
		Use:   "fix [flags]",
		Short: "Scan the table and rewrite every record in canonical form",
		Long: "Scan all records, list them, ask for confirmation, then normalize and write each record back. " +
			"Records that fail are reported and skipped. The table is scanned again at the end for verification.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if backupPath == "" {
				backupPath = cfg.Fix.BackupPath
			}

			s, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}

			var confirmer prompt.Confirmer = prompt.NewStdinConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirmer = prompt.AlwaysConfirm{}
			}

			f := fixer.New(s, event.NewNormalizer(), confirmer,
				display.NewReporter(showDiff, cfg.Fix.MaxDiffLines),
				fixer.Options{
					DryRun:      dryRun,
					UniqueIDs:   boolFlag(cmd, "unique-ids", uniqueIDs, cfg.Fix.UniqueIDsEnabled()),
					RemoveStale: boolFlag(cmd, "remove-stale", removeStale, cfg.Fix.RemoveStaleEnabled()),
					BackupPath:  backupPath,
				})

			ulogFix.Info("Record fixer").
				Field("store", s.Name()).
				Field("dry_run", dryRun).
				Pretty("recfix: media invite record fixer\n" + "==================================================\n").
				PrettyOnly().
				Emit()

			result, err := f.Run(ctx)
			if err != nil {
				return err
			}
			if result.Cancelled || result.Scanned == 0 || result.DryRun {
				return nil
			}

			id, found, err := fixer.SampleID(ctx, s)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error getting sample ID: %v\n", err)
			} else {
				display.SampleHint(id, found, cfg.Fix.VerifyHint)
			}

			if len(result.Failures) > 0 {
				return fmt.Errorf("%d of %d records could not be fixed", len(result.Failures), result.Scanned)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show the raw to canonical diff of each record")
	cmd.Flags().BoolVar(&uniqueIDs, "unique-ids", false, "Bump the sequence of synthesized ids that collide with existing ones")
	cmd.Flags().BoolVar(&removeStale, "remove-stale", false, "Delete items left under an id that was replaced")
	cmd.Flags().StringVar(&backupPath, "backup", "", "Write the scanned items to this JSON file before fixing")

	return cmd
}
