package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordgrid/internal/game"
)

var (
	colorCorrect  = lipgloss.Color("#538d4e")
	colorPresent  = lipgloss.Color("#b59f3b")
	colorAbsent   = lipgloss.Color("#3a3a3c")
	colorEmpty    = lipgloss.Color("#121213")
	colorFlipping = lipgloss.Color("#565758")
	colorText     = lipgloss.Color("#ffffff")
	colorKey      = lipgloss.Color("#818384")

	tileStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorEmpty).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	cursorStyle = tileStyle.Underline(true).Background(lipgloss.Color("#2b2b2d"))

	keyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorKey).
			Padding(0, 1).
			MarginRight(1)

	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#121213")).Background(colorText).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(colorKey).MarginTop(1)
)

// highlightColor maps a scored tile to its background.
func highlightColor(h game.Highlight) lipgloss.Color {
	switch h {
	case game.Correct:
		return colorCorrect
	case game.Present:
		return colorPresent
	case game.Absent:
		return colorAbsent
	}
	return colorEmpty
}
