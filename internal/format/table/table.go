// Package table aligns plain-text columns for list views.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured in terminal cells, so wide runes and ANSI
// styling are accounted for.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], ansi.StringWidth(cell))
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(columnGap)
			}
			pad := strings.Repeat(" ", max(0, widths[c]-ansi.StringWidth(cell)))
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					b.WriteString(pad)
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

// FormatWidth formats rows like Format and truncates every line to width
// cells, marking cut lines with an ellipsis. A width of zero or less
// disables truncation.
func FormatWidth(rows [][]string, alignments []Alignment, width int) []string {
	lines := Format(rows, alignments)
	if width <= 0 {
		return lines
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = truncate.StringWithTail(line, uint(width), "…")
		}
	}
	return lines
}
