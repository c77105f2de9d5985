package tui

import "github.com/charmbracelet/lipgloss"

// Terminal palette: phosphor green on black with an amber accent for alerts.
var (
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	selectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	clockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Padding(1, 4)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("22"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("22")).Padding(0, 1)
	tabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Padding(0, 1)
	activeTab    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	verifiedMark = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("[VERIFIED]")
)
