package tui

import "github.com/charmbracelet/lipgloss"

// Colors.
const (
	ColorAccent = lipgloss.Color("39")
	ColorMuted  = lipgloss.Color("245")
	ColorError  = lipgloss.Color("196")
	ColorOK     = lipgloss.Color("42")
	ColorHeader = lipgloss.Color("255")
)

// Styles shared by the views.
//
//nolint:gochecknoglobals // Lip Gloss styles are immutable values.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted).
				Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

	LabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorOK)
	ErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	CurrentPageStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Underline(true)
	PageStyle        = lipgloss.NewStyle().Foreground(ColorMuted)
)
