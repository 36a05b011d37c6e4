package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// setupExport writes a table export with one item per repair path.
func setupExport(ctx *harness.Context) error {
	dataDir := ctx.NewDir("data")
	if err := fs.CreateDir(dataDir); err != nil {
		return err
	}

	export := `[
  {"id": "evt-1", "event_name": "Launch", "location": {"en": "Hall", "zh": "礼堂"}, "date": "2024-03-05", "category": "Tech"},
  {"event_name": {"en": "Gala", "zh": "晚会"}, "date": "2024-06-01", "speakers": [{"theme": "Keynote"}]},
  {"id": "N/A", "date": "2024-13-01", "vips": [{"name": "Mayor"}], "transportation": "Bus 5"}
]`
	path := filepath.Join(dataDir, "items.json")
	if err := fs.WriteString(path, export); err != nil {
		return fmt.Errorf("failed to write items.json: %w", err)
	}

	ctx.Set("export_path", path)
	ctx.Set("data_dir", dataDir)
	return nil
}

// cmdOutput is what a scenario step inspects after running recfix.
type cmdOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func runRecfix(ctx *harness.Context, args ...string) (cmdOutput, error) {
	bin, err := FindProjectBinary()
	if err != nil {
		return cmdOutput{}, err
	}
	cmd := command.New(bin, args...)
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return cmdOutput{Stdout: result.Stdout, Stderr: result.Stderr, ExitCode: result.ExitCode}, nil
}

// RecfixScanScenario tests the 'recfix scan' command
func RecfixScanScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "recfix-scan-command",
		Steps: []harness.Step{
			harness.NewStep("Setup table export", setupExport),
			harness.NewStep("Run 'recfix scan'", func(ctx *harness.Context) error {
				result, err := runRecfix(ctx, "scan", "--backend", "file", "--path", ctx.GetString("export_path"))
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("recfix scan failed: %s", result.Stderr)
				}

				if err := assert.Contains(result.Stdout, "Found 3 records", "Should count records"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "evt-1", "Should list the existing id"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "NO_ID", "Should mark items without an id")
			}),
		},
	}
}

// RecfixFixScenario tests that 'recfix fix --yes' rewrites the export
func RecfixFixScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "recfix-fix-command",
		Steps: []harness.Step{
			harness.NewStep("Setup table export", setupExport),
			harness.NewStep("Run 'recfix fix --yes'", func(ctx *harness.Context) error {
				backup := filepath.Join(ctx.GetString("data_dir"), "backup.json")
				result, err := runRecfix(ctx, "fix", "--yes",
					"--backend", "file",
					"--path", ctx.GetString("export_path"),
					"--backup", backup)
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("recfix fix failed: %s", result.Stderr)
				}
				if _, err := os.Stat(backup); err != nil {
					return fmt.Errorf("backup was not written: %w", err)
				}
				return nil
			}),
			harness.NewStep("Verify canonical records", func(ctx *harness.Context) error {
				data, err := os.ReadFile(ctx.GetString("export_path"))
				if err != nil {
					return err
				}
				var items []map[string]any
				if err := json.Unmarshal(data, &items); err != nil {
					return fmt.Errorf("export is not a JSON array: %w", err)
				}

				ids := map[string]map[string]any{}
				for _, item := range items {
					id, _ := item["id"].(string)
					ids[id] = item
				}

				fixed, ok := ids["evt-1"]
				if !ok {
					return fmt.Errorf("evt-1 missing after fix")
				}
				name, _ := fixed["event_name"].(map[string]any)
				if err := assert.Equal("Launch", name["zh"], "String names fill both languages"); err != nil {
					return err
				}
				categories, _ := fixed["category"].([]any)
				if err := assert.Equal(1, len(categories), "Scalar category becomes a list"); err != nil {
					return err
				}

				if _, ok := ids["event_20240601_001"]; !ok {
					return fmt.Errorf("expected a synthesized id for the dated item, got %v", keys(ids))
				}
				return nil
			}),
		},
	}
}

// RecfixCheckScenario tests 'recfix check --stdin'
func RecfixCheckScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "recfix-check-command",
		Steps: []harness.Step{
			harness.NewStep("Run 'recfix check --stdin'", func(ctx *harness.Context) error {
				dir := ctx.NewDir("stdin")
				if err := fs.CreateDir(dir); err != nil {
					return err
				}
				input := filepath.Join(dir, "item.json")
				if err := fs.WriteString(input, `{"id": "evt-9", "date": "2024-03-05", "speakers": [{}]}`); err != nil {
					return err
				}

				bin, err := FindProjectBinary()
				if err != nil {
					return err
				}
				cmd := command.New("sh", "-c", fmt.Sprintf("%s check --stdin --output json < %s", bin, input))
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if result.ExitCode != 0 {
					return fmt.Errorf("recfix check failed: %s", result.Stderr)
				}

				if err := assert.Contains(result.Stdout, `"Missing event_name"`, "Should fill missing names"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, `"Unknown"`, "Should name unnamed speakers"); err != nil {
					return err
				}
				return assert.NotContains(result.Stdout, "transportation", "Should omit empty transportation")
			}),
		},
	}
}

func keys(m map[string]map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
