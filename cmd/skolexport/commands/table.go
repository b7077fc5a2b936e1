package commands

import (
	"os"

	"skolexport/lib/scrapers/skola24"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func printWeekSummary(results []skola24.WeekResult) {
	t := newTable()
	t.AppendHeader(table.Row{"Week", "Lessons", "Status"})
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		} else if len(r.Lessons) == 0 {
			status = "empty"
		}
		t.AppendRow(table.Row{r.Week, len(r.Lessons), status})
	}
	t.Render()
}
