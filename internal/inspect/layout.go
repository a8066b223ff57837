package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bookscore/internal/stats"
)

func buildBandTable(report stats.BookReport, width, height int) table.Model {
	columns, rows := bandTableData(report)
	t := table.New(
		table.WithColumns(fitColumns(columns, width)),
		table.WithRows(rows),
		table.WithHeight(max(1, height-1)),
		table.WithFocused(true),
	)
	t.SetStyles(bandTableStyles())
	if width > 0 {
		t.SetWidth(width)
	}
	return t
}

func bandTableData(report stats.BookReport) ([]table.Column, []table.Row) {
	res := report.Result
	total := 0
	for _, c := range res.BandCounts {
		total += c
	}
	labelWidth := len("Band")
	for _, label := range res.BandLabels {
		labelWidth = max(labelWidth, runewidth.StringWidth(label))
	}
	columns := []table.Column{
		{Title: "Band", Width: labelWidth},
		{Title: "Words", Width: 9},
		{Title: "Share", Width: 7},
		{Title: "Weight", Width: 8},
		{Title: "Contribution", Width: 14},
	}
	rows := make([]table.Row, 0, len(res.BandCounts))
	for i, count := range res.BandCounts {
		label, weight := "", 0
		if i < len(res.BandLabels) {
			label = res.BandLabels[i]
		}
		if i < len(report.Weights) {
			weight = report.Weights[i]
		}
		share := 0.0
		if total > 0 {
			share = float64(count) / float64(total) * 100
		}
		rows = append(rows, table.Row{
			label,
			fmt.Sprintf("%d", count),
			fmt.Sprintf("%.1f%%", share),
			fmt.Sprintf("%d", weight),
			fmt.Sprintf("%d", count*weight),
		})
	}
	return columns, rows
}

// fitColumns shrinks the band column so the table fits in width.
func fitColumns(columns []table.Column, width int) []table.Column {
	if width <= 0 || len(columns) == 0 {
		return columns
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 1
	}
	if over := used - width; over > 0 {
		columns[0].Width = max(4, columns[0].Width-over)
	}
	return columns
}

func bandTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// renderOutOfRange lays out words comma separated, wrapped at width cells.
func renderOutOfRange(words []string, width int) string {
	if len(words) == 0 {
		return "No out-of-range words."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d distinct words outside every band:\n\n", len(words))
	lineWidth := 0
	for i, word := range words {
		item := word
		if i < len(words)-1 {
			item += ","
		}
		w := runewidth.StringWidth(item)
		if lineWidth > 0 && lineWidth+1+w > width {
			b.WriteByte('\n')
			lineWidth = 0
		}
		if lineWidth > 0 {
			b.WriteByte(' ')
			lineWidth++
		}
		b.WriteString(item)
		lineWidth += w
	}
	return b.String()
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	if lineWidth := lipgloss.Width(line); lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
