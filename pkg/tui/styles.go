package tui

import "github.com/charmbracelet/lipgloss"

// Color palette. Single source of truth for all TUI colors.
var (
	skyBlue     = lipgloss.Color("#A5D8FF") // primary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // assistant text
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
	softRed     = lipgloss.Color("#FFB3BA") // errors
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(skyBlue).
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	noticeStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(softRed)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(skyBlue).
			Padding(0, 1)
)
