package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one history table column. Counts and percentages are
// right aligned; kanji and category names are left aligned.
type column struct {
	title   string
	numeric bool
}

var (
	categoryColumns = []column{
		{title: "Category"},
		{title: "Rounds", numeric: true},
		{title: "Correct", numeric: true},
		{title: "Incorrect", numeric: true},
		{title: "Unknown", numeric: true},
		{title: "Accuracy", numeric: true},
	}
	missedColumns = []column{
		{title: "Kanji"},
		{title: "Category"},
		{title: "Misses", numeric: true},
		{title: "Rounds", numeric: true},
	}
)

// renderTable writes title, an aligned header and rows, then a blank line.
// Widths are measured in terminal cells so kanji take two columns.
func renderTable(w io.Writer, title string, cols []column, rows [][]string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	widths := columnWidths(cols, rows)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.title
	}
	for _, row := range append([][]string{header}, rows...) {
		if _, err := fmt.Fprintln(w, formatRow(cols, widths, row)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func columnWidths(cols []column, rows [][]string) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = runewidth.StringWidth(col.title)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				if cw := runewidth.StringWidth(row[i]); cw > widths[i] {
					widths[i] = cw
				}
			}
		}
	}
	return widths
}

func formatRow(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if col.numeric {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(cells, " ")
}
