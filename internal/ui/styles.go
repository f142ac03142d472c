package ui

import "github.com/charmbracelet/lipgloss"

// Centralized lipgloss styles for the TUIs.

var (
	columnStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.HiddenBorder())
	focusedColumnStyle = lipgloss.NewStyle().
				Padding(1, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(30)

	statusActiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	statusWorkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	statusIdleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	statusOfflineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	logInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	logSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	logWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	logErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)
