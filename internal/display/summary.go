package display

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// SummaryRow is one line of the end-of-run results table. Fields are
// pre-formatted strings so this package stays free of pipeline types.
type SummaryRow struct {
	Source  string
	Rows    string
	Output  string
	Status  string
	Elapsed string
}

// RenderSummary writes the per-file results table.
func RenderSummary(w io.Writer, rows []SummaryRow) {
	if len(rows) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Source", "Rows", "Output", "Status", "Time"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range rows {
		table.Append([]string{r.Source, r.Rows, r.Output, r.Status, r.Elapsed})
	}
	table.Render()
}
