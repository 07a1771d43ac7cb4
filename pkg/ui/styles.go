package ui

import "github.com/charmbracelet/lipgloss"

// Dracula-derived palette, kept in sync with the HTML export theme.
var (
	ColorBg          = lipgloss.Color("#282a36")
	ColorBgDark      = lipgloss.Color("#21222c")
	ColorBgHighlight = lipgloss.Color("#44475a")
	ColorText        = lipgloss.Color("#f8f8f2")
	ColorSubtext     = lipgloss.Color("#6272a4")
	ColorPrimary     = lipgloss.Color("#bd93f9")
	ColorSecondary   = lipgloss.Color("#8be9fd")
	ColorAccent      = lipgloss.Color("#50fa7b")
	ColorWarn        = lipgloss.Color("#ffb86c")
	ColorDanger      = lipgloss.Color("#ff5555")
	ColorPink        = lipgloss.Color("#ff79c6")
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgHighlight).
				Bold(true)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DimRowStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	RelatedMarkStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	SelectedMarkStyle = lipgloss.NewStyle().
				Foreground(ColorPink).
				Bold(true)
)

func lipglossRender(c lipgloss.TerminalColor, s string) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// genreColor maps a handful of common genre groups to stable colors so the
// list stays scannable. Everything else falls back to the secondary color.
func genreColor(genre string) lipgloss.TerminalColor {
	switch genre {
	case "Action":
		return ColorDanger
	case "Adventure":
		return ColorWarn
	case "RPG":
		return ColorPrimary
	case "Strategy":
		return ColorSecondary
	case "Simulation":
		return ColorAccent
	case "Indie":
		return ColorPink
	default:
		return ColorSecondary
	}
}
