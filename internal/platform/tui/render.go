package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bookshelf/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorWood:      lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorSpine:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorSpineAlt:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorDragged:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorDisplaced: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorGuide:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorStatus:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorError:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
