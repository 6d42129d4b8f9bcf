// Package widgets renders the preview building blocks: color grids,
// interpolation ramps, pad swatches and key help.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rgbseq/rgb"
)

// RenderGrid renders a color map as two-character background cells so a
// grid cell reads roughly square in a terminal.
func RenderGrid(grid rgb.Map) string {
	w, h := grid.Size()
	if w == 0 || h == 0 {
		return ""
	}
	var lines []string
	for y := 0; y < h; y++ {
		var line strings.Builder
		for x := 0; x < w; x++ {
			style := lipgloss.NewStyle().Background(lipgloss.Color(grid[y][x].Hex()))
			line.WriteString(style.Render("  "))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderRamp renders one cell per color, for previewing the step color
// span.
func RenderRamp(colors []rgb.Color) string {
	var out strings.Builder
	for _, c := range colors {
		style := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
		out.WriteString(style.Render(" "))
	}
	return out.String()
}

// RenderPad renders one swatch glyph in the given color.
func RenderPad(color [3]uint8, glyph rune) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render(string(glyph))
}

// RenderLegendItem renders one legend line, "glyph name - description"
// with the glyph colored.
func RenderLegendItem(color [3]uint8, glyph rune, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(color, glyph), name, desc)
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
