package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/recfix/internal/display"
	"github.com/grovetools/recfix/internal/event"
	"github.com/grovetools/recfix/internal/formatters"
	"github.com/grovetools/recfix/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var ulogCheck = grovelogging.NewUnifiedLogger("recfix.cmd.check")

func newCheckCmd() *cobra.Command {
	var flags storeFlags
	var output string
	var fromStdin, showDiff bool

	cmd := &cobra.Command{
		Use:   "check [id]",
		Short: "Show the canonical form of records without writing",
		Long: "Normalize records from the table, or JSON read from stdin, and print the result. " +
			"Nothing is written back. With an id only that record is checked.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			n := event.NewNormalizer()

			cfg, err := flags.load()
			if err != nil {
				return err
			}

			var items []store.Item
			if fromStdin {
				items, err = readItems(cmd.InOrStdin())
				if err != nil {
					return err
				}
			} else {
				s, err := openStore(ctx, cfg)
				if err != nil {
					return fmt.Errorf("failed to open store: %w", err)
				}
				items, err = s.Scan(ctx)
				if err != nil {
					return fmt.Errorf("failed to scan %s: %w", s.Name(), err)
				}
			}

			if len(args) == 1 {
				items = filterByID(items, args[0])
				if len(items) == 0 {
					return fmt.Errorf("no record with id %q", args[0])
				}
			}

			records := make([]event.Record, len(items))
			for i, item := range items {
				records[i] = n.Normalize(item)
			}

			switch output {
			case "json":
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal records: %w", err)
				}
				fmt.Println(string(data))
			case "yaml":
				data, err := yaml.Marshal(records)
				if err != nil {
					return fmt.Errorf("failed to marshal records: %w", err)
				}
				fmt.Print(string(data))
			case "table":
				display.PrintRecordsTable(records, os.Stdout)
				if showDiff {
					for i, rec := range records {
						ulogCheck.Info("Record diff").
							Field("id", rec.ID).
							Pretty(recordDiff(items[i], rec, cfg.Fix.MaxDiffLines)).
							PrettyOnly().
							Emit()
					}
				}
			default:
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read a JSON object or array of objects from stdin instead of the table")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show the raw to canonical diff of each record (table output)")

	return cmd
}

// readItems decodes a single JSON item or an array of items.
func readItems(r io.Reader) ([]store.Item, error) {
	var raw any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode stdin: %w", err)
	}

	values, ok := raw.([]any)
	if !ok {
		values = []any{raw}
	}

	items := make([]store.Item, 0, len(values))
	for i, v := range values {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d is not a JSON object", i+1)
		}
		items = append(items, m)
	}
	return items, nil
}

// recordDiff renders one record's change under its id.
func recordDiff(old store.Item, rec event.Record, maxLines int) string {
	return fmt.Sprintf("\n%s\n%s", rec.ID, formatters.FormatChange(old, rec, maxLines))
}

func filterByID(items []store.Item, id string) []store.Item {
	var out []store.Item
	for _, item := range items {
		if store.ItemID(item) == id {
			out = append(out, item)
		}
	}
	return out
}
