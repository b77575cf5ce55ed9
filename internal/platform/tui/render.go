package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/laserpunk/internal/core"
)

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorDim:           fg("240"),
	core.ColorFloor:         fg("236"),
	core.ColorWall:          fg("61"),
	core.ColorDoor:          fg("130"),
	core.ColorDoorOpen:      fg("214"),
	core.ColorBeam:          fg("9").Bold(true),
	core.ColorRedirector:    fg("250"),
	core.ColorRedirectorLit: fg("15").Bold(true),
	core.ColorReceiver:      fg("67"),
	core.ColorReceiverLit:   fg("203").Bold(true),
	core.ColorBlocker:       fg("244"),
	core.ColorBlocking:      fg("196"),
	core.ColorSplitter:      fg("140"),
	core.ColorSplitterLit:   fg("213").Bold(true),
	core.ColorLocker:        fg("33"),
	core.ColorReward:        fg("220"),
	core.ColorGlass:         fg("117"),
	core.ColorGlassLit:      fg("159").Bold(true),
	core.ColorAutomaton:     fg("166"),
	core.ColorPlayer:        fg("46").Bold(true),
	core.ColorText:          fg("252"),
	core.ColorWarn:          fg("203"),
	core.ColorGood:          fg("114"),
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
		s.Runs(y, func(text string, c core.Color) {
			style, ok := colorStyles[c]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(text))
		})
	}
	return sb.String()
}
