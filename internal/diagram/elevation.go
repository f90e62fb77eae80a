package diagram

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
)

// ElevationProfile renders the story stack as an ASCII elevation graph
// followed by a story table. Story order is top-down as resolved; the
// graph runs base to roof left to right.
func ElevationProfile(order []string, elev map[string]float64) string {
	var sb strings.Builder
	if len(order) == 0 {
		return "  (no stories)\n"
	}

	series := make([]float64, len(order))
	for i, name := range order {
		series[len(order)-1-i] = elev[name]
	}

	sb.WriteString("\n  STORY ELEVATIONS\n")
	sb.WriteString("  ────────────────\n\n")
	sb.WriteString(asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Precision(2),
		asciigraph.Caption("base → roof"),
	))
	sb.WriteString("\n\n")

	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STORY\tINDEX\tELEVATION\tHEIGHT")
	for i, name := range order {
		height := "-"
		if i+1 < len(order) {
			height = fmt.Sprintf("%.3f", elev[name]-elev[order[i+1]])
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%s\n", name, i, elev[name], height)
	}
	w.Flush()

	return sb.String()
}

// SummaryBox frames a titled block of result lines in a double border.
func SummaryBox(title string, lines []string) string {
	width := len(title)
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}
	width += 4

	var sb strings.Builder
	border := strings.Repeat("═", width)
	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %-*s  ║\n", width-4, title)
	fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %-*s  ║\n", width-4, line)
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)
	return sb.String()
}
