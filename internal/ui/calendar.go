package ui

import (
	"fmt"
	"strings"
	"time"
)

// MonthGrid renders the month containing day as a Monday-first grid, with
// reading days highlighted.
func MonthGrid(day time.Time, read map[string]bool) string {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	var b strings.Builder
	b.WriteString("Mo Tu We Th Fr Sa Su\n")

	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))
	col := offset
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", d.Day())
		if read[d.Format(time.DateOnly)] {
			cell = ReadDay.Render(cell)
		}
		b.WriteString(cell)
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), " \n")
}
