package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// SeverityCount is one row of the findings summary.
type SeverityCount struct {
	Severity string
	Count    int
}

// FindingsTable renders the findings count per severity followed by the
// total, most severe first as given.
func FindingsTable(rows []SeverityCount) string {
	total := 0
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(DividerStyle).
		Headers("Severity", "Findings")
	for _, r := range rows {
		t.Row(r.Severity, strconv.Itoa(r.Count))
		total += r.Count
	}
	t.Row("Total", strconv.Itoa(total))

	last := len(rows)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return TableHeaderStyle
		case row == last:
			return TableCellStyle.Bold(true)
		case col == 0 && row >= 0 && row < len(rows):
			return SeverityStyle(rows[row].Severity)
		}
		return TableCellStyle
	})
	return t.Render()
}

// PrintFindingsTable writes FindingsTable to the console.
func PrintFindingsTable(rows []SeverityCount) {
	if IsSilent() {
		return
	}
	writeTable(out(), FindingsTable(rows))
}

func writeTable(w io.Writer, rendered string) {
	fmt.Fprintln(w, rendered)
}
