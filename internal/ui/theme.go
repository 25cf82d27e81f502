package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorText   = lipgloss.Color("#cdd6f4")
	colorMuted  = lipgloss.Color("#a6adc8")
	colorAccent = lipgloss.Color("#cba6f7")
	colorBorder = lipgloss.Color("#585b70")
	colorError  = lipgloss.Color("#f38ba8")
	colorOK     = lipgloss.Color("#94e2d5")
)

// Shared styles.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	TextStyle    = lipgloss.NewStyle().Foreground(colorText)
	MutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorError)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorOK)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	ButtonStyle   = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder)
	ButtonFocused = ButtonStyle.BorderForeground(colorAccent).Foreground(colorAccent)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)

// Frame draws a bordered box with a title line above body.
func Frame(title, body string) string {
	if title == "" {
		return frameStyle.Render(body)
	}
	return frameStyle.Render(TitleStyle.Render(title) + "\n\n" + body)
}
