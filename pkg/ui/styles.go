package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Brand colors
	Primary   = lipgloss.Color("#1E88E5") // Blue - brand color
	Secondary = lipgloss.Color("#26A69A") // Teal

	// Severity colors, matching the report charts
	Critical = lipgloss.Color("#B71C1C")
	High     = lipgloss.Color("#F44336")
	Medium   = lipgloss.Color("#FF9800")
	Low      = lipgloss.Color("#FFEB3B")
	Info     = lipgloss.Color("#2196F3")

	// Status colors
	Success = lipgloss.Color("#00D26A") // Bright green
	Warning = lipgloss.Color("#FFB800") // Amber
	Error   = lipgloss.Color("#FF3838") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray
)

// Pre-configured styles
var (
	// Banner style
	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Version badge
	VersionStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Section headers
	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			MarginTop(1)

	// Configuration display
	ConfigLabelStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Width(15)

	ConfigValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA"))

	// Statistics
	StatLabelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	// Bracketed metadata
	BracketStyle = lipgloss.NewStyle().
			Foreground(Muted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Divider
	DividerStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Help/footer
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Path style
	PathStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Underline(true)

	// Category badge
	CategoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3B3B4F")).
			Padding(0, 1)
)

// SeverityStyle returns the badge style for a scanner severity label.
// Matching is case-insensitive and covers bandit and sonarqube spellings.
func SeverityStyle(severity string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch strings.ToUpper(severity) {
	case "CRITICAL", "BLOCKER":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(Critical)
	case "HIGH", "MAJOR", "VULNERABLE":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(High)
	case "MEDIUM", "MINOR":
		return base.Foreground(lipgloss.Color("#000000")).Background(Medium)
	case "LOW":
		return base.Foreground(lipgloss.Color("#000000")).Background(Low)
	case "INFO":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(Info)
	default:
		return base.Foreground(Muted)
	}
}
