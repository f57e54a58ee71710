package report

import "github.com/charmbracelet/lipgloss"

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C9EF5")
	// SuccessColor indicates healthy projects.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates delayed projects and medium alerts.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates at-risk projects and high alerts.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for the report header.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// HealthyStyle formats on-track badges.
	HealthyStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// DelayedStyle formats delayed badges and medium-severity lines.
	DelayedStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// AtRiskStyle formats at-risk badges and high-severity lines.
	AtRiskStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for the critical summary box.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 2)
)

// HealthStyle returns the badge style for a health label.
func HealthStyle(health string) lipgloss.Style {
	switch health {
	case "At Risk":
		return AtRiskStyle
	case "Delayed":
		return DelayedStyle
	default:
		return HealthyStyle
	}
}

// SeverityStyle returns the line style for an alert severity.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "High":
		return AtRiskStyle
	case "Medium":
		return DelayedStyle
	default:
		return SubtleStyle
	}
}
