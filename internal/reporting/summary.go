// internal/reporting/summary.go
package reporting

import (
	"os"

	"github.com/jedib0t/go-pretty/table"
)

// PrintSummary renders a per-domain result summary to stdout. Used after a
// run whose report went to a file, so the console still shows what happened.
func PrintSummary(entries []Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleColoredBright)
	t.AppendHeader(table.Row{"Domain", "Answered", "Empty", "Failed", "Geo IPs"})
	for _, e := range entries {
		answered, empty, failed := e.Counts()
		t.AppendRow(table.Row{e.Domain, answered, empty, failed, len(e.Geo)})
	}
	t.Render()
}
