package display

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/recfix/internal/fixer"
	"github.com/grovetools/recfix/internal/formatters"
	"github.com/grovetools/recfix/internal/store"
)

var ulogReport = grovelogging.NewUnifiedLogger("recfix.display.report")

// Reporter prints the progress of a fix run.
type Reporter struct {
	// ShowDiff prints the raw-to-canonical diff of every record.
	ShowDiff bool
	// MaxDiffLines caps the changed lines per diff; 0 shows all.
	MaxDiffLines int

	muted lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
	note  lipgloss.Style
}

// NewReporter creates a Reporter.
func NewReporter(showDiff bool, maxDiffLines int) *Reporter {
	return &Reporter{
		ShowDiff:     showDiff,
		MaxDiffLines: maxDiffLines,
		muted:        lipgloss.NewStyle().Foreground(theme.DefaultColors.MutedText),
		good:         lipgloss.NewStyle().Foreground(theme.DefaultColors.Green),
		bad:          lipgloss.NewStyle().Foreground(theme.DefaultColors.Red),
		note:         lipgloss.NewStyle().Foreground(theme.DefaultColors.Yellow),
	}
}

var _ fixer.Reporter = (*Reporter)(nil)

// Scanned lists the records found.
func (r *Reporter) Scanned(storeName string, items []store.Item) {
	var table bytes.Buffer
	if len(items) > 0 {
		PrintItemsTable(items, &table)
	}

	ulogReport.Info("Table scanned").
		Field("store", storeName).
		Field("record_count", len(items)).
		Pretty(fmt.Sprintf("%s Scanning %s\nFound %d records\n\n%s", theme.IconFile, storeName, len(items), table.String())).
		PrettyOnly().
		Emit()
}

// NoRecords reports an empty table.
func (r *Reporter) NoRecords() {
	ulogReport.Info("No records").
		Pretty(r.note.Render("No records found in the table") + "\n").
		PrettyOnly().
		Emit()
}

// BackupWritten reports the backup file.
func (r *Reporter) BackupWritten(path string, count int) {
	ulogReport.Info("Backup written").
		Field("path", path).
		Field("record_count", count).
		Pretty(r.muted.Render(fmt.Sprintf("Backed up %d records to %s", count, path)) + "\n").
		PrettyOnly().
		Emit()
}

// Cancelled reports a negative confirmation.
func (r *Reporter) Cancelled() {
	ulogReport.Info("Cancelled").
		Pretty(r.bad.Render("Operation cancelled") + "\n").
		PrettyOnly().
		Emit()
}

// Fixing shows what changes for one record.
func (r *Reporter) Fixing(c fixer.Change) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s Fixing record %d: %s\n", theme.IconChevron, c.Index, displayID(c.OldID))
	fmt.Fprintf(&b, "   Old ID: %s -> New ID: %s\n", displayID(c.OldID), c.Record.ID)
	fmt.Fprintf(&b, "   Event: %s\n", c.Record.EventName.En)
	fmt.Fprintf(&b, "   Date: %s\n", c.Record.Date)
	fmt.Fprintf(&b, "   Categories: %s\n", formatters.FormatCategories(c.Record.Category))
	if r.ShowDiff {
		b.WriteString(formatters.FormatChange(c.Old, c.Record, r.MaxDiffLines))
	}

	ulogReport.Info("Fixing record").
		Field("index", c.Index).
		Field("old_id", c.OldID).
		Field("new_id", c.Record.ID).
		Pretty(b.String()).
		PrettyOnly().
		Emit()
}

// Saved confirms a written record.
func (r *Reporter) Saved(c fixer.Change) {
	ulogReport.Info("Record saved").
		Field("id", c.Record.ID).
		Pretty("   " + r.good.Render("Fixed and saved") + "\n").
		PrettyOnly().
		Emit()
}

// StaleRemoved reports a deleted old item.
func (r *Reporter) StaleRemoved(id string) {
	ulogReport.Info("Stale item removed").
		Field("id", id).
		Pretty("   " + r.muted.Render("Removed item stored under "+id) + "\n").
		PrettyOnly().
		Emit()
}

// RecordFailed reports a record that could not be fixed.
func (r *Reporter) RecordFailed(f fixer.Failure) {
	ulogReport.Info("Record failed").
		Field("id", f.ID).
		Field("error", f.Err.Error()).
		Pretty("   " + r.bad.Render(fmt.Sprintf("Error fixing record %s: %v", f.ID, f.Err)) + "\n").
		PrettyOnly().
		Emit()
}

// Summary reports the totals.
func (r *Reporter) Summary(res fixer.Result) {
	var msg string
	switch {
	case res.DryRun:
		msg = fmt.Sprintf("Dry run: %d records would be rewritten, nothing was written", res.Scanned-len(res.Failures))
	default:
		msg = fmt.Sprintf("Successfully fixed %d out of %d records", res.Fixed, res.Scanned)
		if res.Removed > 0 {
			msg += fmt.Sprintf(", removed %d stale items", res.Removed)
		}
	}

	style := r.good
	if len(res.Failures) > 0 {
		style = r.note
	}

	ulogReport.Info("Run summary").
		Field("scanned", res.Scanned).
		Field("fixed", res.Fixed).
		Field("removed", res.Removed).
		Field("failed", len(res.Failures)).
		Field("dry_run", res.DryRun).
		Pretty("\n" + style.Render(msg) + "\n").
		PrettyOnly().
		Emit()
}

// Verified lists the table after the run.
func (r *Reporter) Verified(items []store.Item) {
	var table bytes.Buffer
	PrintItemsTable(items, &table)

	ulogReport.Info("Final verification").
		Field("record_count", len(items)).
		Pretty(fmt.Sprintf("\n%s Final verification:\n%s", theme.IconChecklist, table.String())).
		PrettyOnly().
		Emit()
}

// SampleHint points the operator at the companion verification tool.
func SampleHint(id string, found bool, verifyHint string) {
	if !found {
		ulogReport.Info("No sample").
			Pretty("No records found to test with\n").
			PrettyOnly().
			Emit()
		return
	}

	ulogReport.Info("Sample record").
		Field("sample_id", id).
		Pretty(fmt.Sprintf("Sample ID found: %s\nTest this ID with: %s\n", id, verifyHint)).
		PrettyOnly().
		Emit()
}

func displayID(id string) string {
	if id == "" {
		return "NO_ID"
	}
	return id
}
