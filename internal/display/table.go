package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/grovetools/recfix/internal/event"
	"github.com/grovetools/recfix/internal/formatters"
	"github.com/grovetools/recfix/internal/store"
)

// PrintItemsTable prints raw items as a numbered table of id, date and name.
func PrintItemsTable(items []store.Item, writer io.Writer) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tID\tDATE\tNAME")
	for i, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			i+1,
			formatters.FieldText(item, event.FieldID, "NO_ID"),
			formatters.FieldText(item, event.FieldDate, "NO_DATE"),
			formatters.FieldText(item, event.FieldEventName, "NO_NAME"))
	}
	w.Flush()
}

// PrintRecordsTable prints canonical records.
func PrintRecordsTable(records []event.Record, writer io.Writer) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tNAME\tCATEGORIES\tSPEAKERS\tVIPS")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			r.ID, r.Date, r.EventName.En,
			formatters.FormatCategories(r.Category),
			len(r.Speakers), len(r.VIPs))
	}
	w.Flush()
}
