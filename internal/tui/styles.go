package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	statusStyle     = lipgloss.NewStyle().Italic(true)
	selectedStyle   = lipgloss.NewStyle().Bold(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	quoteStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)
