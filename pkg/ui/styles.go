package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Brand colors
	Primary   = lipgloss.Color("#212529") // Report ink
	Secondary = lipgloss.Color("#0D6EFD") // Link blue

	// Severity colors, following the report's severity classification
	Critical = lipgloss.Color("#B02A37")
	High     = lipgloss.Color("#DC3545")
	Medium   = lipgloss.Color("#FD7E14")
	Low      = lipgloss.Color("#FFC107")
	QA       = lipgloss.Color("#0DCAF0")
	Gas      = lipgloss.Color("#6C757D")

	// Status colors
	Success = lipgloss.Color("#00D26A")
	Warning = lipgloss.Color("#FFB800")
	Error   = lipgloss.Color("#FF3838")
	Muted   = lipgloss.Color("#6B7280")
)

// Pre-configured styles
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			MarginTop(1)

	ConfigLabelStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Width(15)

	ConfigValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	DividerStyle = lipgloss.NewStyle().
			Foreground(Muted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Underline(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// SeverityStyle returns the badge style for a severity name.
func SeverityStyle(severity string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch severity {
	case "Critical":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(Critical)
	case "High":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(High)
	case "Medium":
		return base.Foreground(lipgloss.Color("#000000")).Background(Medium)
	case "Low":
		return base.Foreground(lipgloss.Color("#000000")).Background(Low)
	case "QA":
		return base.Foreground(lipgloss.Color("#000000")).Background(QA)
	case "GAS":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(Gas)
	default:
		return base.Foreground(Muted)
	}
}
