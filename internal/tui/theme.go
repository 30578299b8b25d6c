package tui

import "github.com/charmbracelet/lipgloss"

// The palette is adaptive: every colour has a light and a dark variant, and
// the variant in use follows lipgloss.HasDarkBackground, which ApplyTheme sets
// from the persisted preference.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorFg       = ac("235", "252")
	colorBg       = ac("255", "235")
	colorMuted    = ac("240", "245")
	colorAccent   = ac("27", "62")
	colorAccentFg = ac("255", "230")
	colorDone     = ac("28", "78")
	colorError    = ac("160", "203")
	colorBorder   = ac("250", "240")
)

var (
	appStyle      lipgloss.Style
	titleStyle    lipgloss.Style
	filterStyle   lipgloss.Style
	filterOnStyle lipgloss.Style
	cursorStyle   lipgloss.Style
	doneStyle     lipgloss.Style
	editStyle     lipgloss.Style
	inputStyle    lipgloss.Style
	mutedStyle    lipgloss.Style
	errorStyle    lipgloss.Style
	helpStyle     lipgloss.Style
)

func init() {
	initStyles()
}

func initStyles() {
	appStyle = lipgloss.NewStyle().Padding(1, 2).Foreground(colorFg).Background(colorBg)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	filterStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	filterOnStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	doneStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(colorDone)
	editStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorAccent)
	inputStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1).MarginTop(1)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError).MarginTop(1)
	helpStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
}

// ApplyTheme switches the palette between its light and dark variants.
// It is registered as the controller's theme hook.
func ApplyTheme(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}
