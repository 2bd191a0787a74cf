package ui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	sortStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	borderColor = lipgloss.Color("60")
	focusColor  = lipgloss.Color("45")

	cpuColor       = lipgloss.Color("10")
	memoryColor    = lipgloss.Color("12")
	swapColor      = lipgloss.Color("13")
	processesColor = lipgloss.Color("14")
	disksColor     = lipgloss.Color("11")
	networksColor  = lipgloss.Color("9")

	gaugeFill  = "█"
	gaugeEmpty = "░"

	trackVertical   = "│"
	thumbVertical   = "┃"
	trackHorizontal = "─"
	thumbHorizontal = "━"
)
