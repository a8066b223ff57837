// Package stats renders score reports and score history.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table lays out rows in columns sized by terminal display width, so wide
// runes in book titles stay aligned.
type table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

func newTable(headers []string, rows [][]string, right map[int]bool) table {
	return table{headers: headers, rows: rows, right: right}
}

func (t table) columns() int {
	n := len(t.headers)
	for _, row := range t.rows {
		n = max(n, len(row))
	}
	return n
}

func (t table) widths() []int {
	widths := make([]int, t.columns())
	grow := func(cells []string) {
		for i, cell := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	grow(t.headers)
	for _, row := range t.rows {
		grow(row)
	}
	return widths
}

// lines renders the header (when present) and every row. Short rows are
// padded with empty cells.
func (t table) lines() []string {
	widths := t.widths()
	if len(widths) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.rows)+1)
	if len(t.headers) > 0 {
		out = append(out, t.line(t.headers, widths))
	}
	for _, row := range t.rows {
		out = append(out, t.line(row, widths))
	}
	return out
}

func (t table) line(cells []string, widths []int) string {
	var b strings.Builder
	for col, width := range widths {
		if col > 0 {
			b.WriteByte(' ')
		}
		var cell string
		if col < len(cells) {
			cell = cells[col]
		}
		fill := strings.Repeat(" ", max(0, width-runewidth.StringWidth(cell)))
		if t.right[col] {
			b.WriteString(fill + cell)
		} else {
			b.WriteString(cell + fill)
		}
	}
	return b.String()
}

// write prints the table with trailing blanks removed from each line.
func (t table) write(w io.Writer) error {
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, headers []string, rows [][]string, right map[int]bool) error {
	return newTable(headers, rows, right).write(w)
}
