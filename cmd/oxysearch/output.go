package main

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle = color.New(color.FgCyan, color.Bold)
	errorStyle  = color.New(color.FgRed, color.Bold)
	nameStyle   = color.New(color.FgGreen)
	mutedStyle  = color.New(color.FgHiBlack)
)

// table renders rows as left-aligned columns. Widths are measured in
// terminal cells so wide characters line up. Cells in the last column are
// truncated to maxLast cells when maxLast is positive.
func table(rows [][]string, maxLast int) string {
	if len(rows) == 0 {
		return ""
	}
	columns := len(rows[0])
	widths := make([]int, columns)
	for _, row := range rows {
		for i := 0; i < columns-1 && i < len(row); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	var sb strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == columns-1 {
				if maxLast > 0 {
					cell = runewidth.Truncate(cell, maxLast, "...")
				}
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]+2))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
