package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	tagStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#27272a")).
			Foreground(lipgloss.Color("#a1a1aa")).
			Padding(0, 1)

	tagActiveStyle = tagStyle.
			Background(lipgloss.Color("#3f3f46")).
			Foreground(lipgloss.Color("#fde68a"))

	badgeTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	badgeLevelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	badgeMatchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	cardActiveStyle = cardStyle.
			BorderForeground(lipgloss.Color("#fde68a"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#27272a")).
			Background(lipgloss.Color("#94a3b8")).
			Padding(0, 1)

	buttonBusyStyle = buttonStyle.
			Background(lipgloss.Color("#52525b")).
			Foreground(lipgloss.Color("#a1a1aa"))

	starOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	starOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#fca5a5")).
			Foreground(lipgloss.Color("#fca5a5")).
			Padding(0, 1)

	noticeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#bae6fd")).
			Foreground(lipgloss.Color("#bae6fd")).
			Padding(0, 1)
)

const (
	starOn  = "★"
	starOff = "☆"
)

// renderStars draws a star row. focus is the 1-indexed star under the
// keyboard cursor, or 0.
func renderStars(row [recipe.MaxStars]bool, focus int) string {
	var b strings.Builder
	for i, on := range row {
		glyph := starOffStyle.Render(starOff)
		if on {
			glyph = starOnStyle.Render(starOn)
		}
		if focus == i+1 {
			glyph = "[" + glyph + "]"
		} else if focus > 0 {
			glyph = " " + glyph + " "
		}
		b.WriteString(glyph)
	}
	return b.String()
}
