package commands

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
	"github.com/Sumatoshi-tech/osmfang/internal/report"
)

// printSummary renders the run totals as a terminal table.
func (rc *RunCommand) printSummary(w io.Writer, ix *activity.Index, res report.Result) {
	minDay, maxDay := ix.DayRange()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Edit events", humanize.Comma(ix.Events())},
		{"Editors", humanize.Comma(int64(ix.Users()))},
		{"Active days", humanize.Comma(int64(ix.ActiveDayCount()))},
		{"Observed range", minDay.String() + " to " + maxDay.String()},
		{"Per-user span", res.Start.String() + " to " + res.End.String()},
		{"Per-day report", res.PerDayPath},
		{"Per-user report", res.PerUserPath},
	})

	t.Render()

	color.New(color.FgGreen, color.Bold).Fprintln(w, "Finished")
}
