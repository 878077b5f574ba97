package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/hydrocad/hydrocad/internal/profile"
)

// DrawASCIISection renders the channel cross-section in the terminal,
// shading the water prism when a depth is given.
func DrawASCIISection(data SectionDiagramData) string {
	prof, err := profile.Build(data.Spec)
	if err != nil {
		return fmt.Sprintf("  (cannot draw section: %v)\n", err)
	}

	var sb strings.Builder
	widthChars := 36
	heightChars := 14

	totalHeight := data.Spec.TotalHeight()
	topWidth := data.Spec.TopWidth()
	if totalHeight <= 0 || topWidth <= 0 {
		return ""
	}

	waterLine := -1
	if data.WaterDepth > 0 {
		waterLine = heightChars - int(data.WaterDepth/totalHeight*float64(heightChars))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  SECTION %s\n", data.Spec.Type))
	sb.WriteString("  ────────────\n")

	// Rows run top-down; row heightChars is the invert.
	for i := 0; i <= heightChars; i++ {
		y := totalHeight * float64(heightChars-i) / float64(heightChars)
		left, right := widthAtDepth(prof.Inner, y)
		if right <= left {
			left, right = -topWidth/2, topWidth/2
		}

		lCol := int((left/topWidth + 0.5) * float64(widthChars))
		rCol := int((right/topWidth + 0.5) * float64(widthChars))
		if lCol < 0 {
			lCol = 0
		}
		if rCol > widthChars {
			rCol = widthChars
		}
		if rCol <= lCol {
			rCol = lCol + 1
		}

		fill := " "
		if waterLine >= 0 && i >= waterLine {
			fill = "░"
		}
		row := strings.Repeat(" ", lCol) + "\\" + strings.Repeat(fill, rCol-lCol) + "/"

		sb.WriteString("  " + row)
		if i == waterLine {
			sb.WriteString(fmt.Sprintf("  ◄─ water %.2f m", data.WaterDepth))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  " + strings.Repeat(" ", (widthChars-8)/2) + "(invert)\n")
	return sb.String()
}

// DrawLongitudinalProfile plots elevation against chainage as a
// terminal graph.
func DrawLongitudinalProfile(elevations []float64, caption string) string {
	if len(elevations) < 2 {
		return ""
	}
	return asciigraph.Plot(
		elevations,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	) + "\n"
}

// DrawSummaryBox frames a titled list of result lines. Widths count
// runes, not bytes, so lines with m²/m³ units stay aligned.
func DrawSummaryBox(title string, lines []string) string {
	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	width += 2

	var sb strings.Builder
	row := func(s string) {
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(s))
		sb.WriteString("  ║  " + s + pad + "  ║\n")
	}
	border := strings.Repeat("═", width+4)

	sb.WriteString("  ╔" + border + "╗\n")
	row(title)
	sb.WriteString("  ╠" + border + "╣\n")
	for _, line := range lines {
		row(line)
	}
	sb.WriteString("  ╚" + border + "╝\n")
	return sb.String()
}
