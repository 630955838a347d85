package ui

import "github.com/charmbracelet/lipgloss"

var (
	TextMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	TextCommand = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent) // graphctl service list
	TextBold    = lipgloss.NewStyle().Bold(true)

	SectionHeader = lipgloss.NewStyle().Bold(true)
	SectionRule   = lipgloss.NewStyle().Faint(true)
	KeyStyle      = lipgloss.NewStyle().Faint(true).Width(12)
	ValueStyle    = lipgloss.NewStyle().PaddingLeft(1)

	LabelWarning = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	LabelError   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	LabelInfo    = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
)
