package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/client-pulse/internal/report"
)

var (
	focusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(report.PrimaryColor).
			Padding(0, 1)

	blurredBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(report.SubtleColor).
			Padding(0, 1)

	selectedAlertStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(report.PrimaryColor)
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{
		m.renderHeader(),
		m.renderProjects(),
		m.renderAlerts(),
		m.renderStatus(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	if m.lastError != nil {
		return report.AtRiskStyle.Render(fmt.Sprintf("Failed to load: %v", m.lastError)) +
			report.SubtleStyle.Render("\n\nr to retry, q to quit\n")
	}
	return report.SubtitleStyle.Render("Loading project snapshot...")
}

func (m Model) renderHeader() string {
	counts := report.CountBySeverity(report.VisibleAlerts(m.snap.Projects, m.snap.Alerts))
	summary := fmt.Sprintf("%d projects · %d high · %d medium · %d low",
		len(m.snap.Projects), counts["High"], counts["Medium"], counts["Low"])

	return report.TitleStyle.Render("Client Pulse") + "\n" +
		report.SubtitleStyle.Render(
			summary+"  as of "+m.snap.TakenAt.Format("2006-01-02 15:04"))
}

func (m Model) renderProjects() string {
	border := blurredBorder
	if m.pane == PaneProjects {
		border = focusedBorder
	}
	return border.Render(m.projects.View())
}

func (m Model) renderAlerts() string {
	border := blurredBorder
	if m.pane == PaneAlerts {
		border = focusedBorder
	}

	var b strings.Builder
	if p, ok := m.selectedProject(); ok {
		b.WriteString(report.HealthStyle(string(p.Health)).Render(string(p.Health)))
		b.WriteString(report.SubtleStyle.Render("  " + p.Name))
		b.WriteString("\n")
	}

	if len(m.alerts) == 0 {
		b.WriteString(report.SubtleStyle.Render("No active alerts"))
		b.WriteString("\n")
		m.writeActivity(&b)
		return border.Render(strings.TrimRight(b.String(), "\n"))
	}

	for i, a := range m.alerts {
		line := fmt.Sprintf("[%s] %s", a.Severity, a.Message)
		if i == m.alertIdx && m.pane == PaneAlerts {
			b.WriteString(selectedAlertStyle.Render("> " + line))
		} else {
			b.WriteString(report.SeverityStyle(string(a.Severity)).Render("  " + line))
		}
		b.WriteString("\n")
		if a.SuggestedAction != "" {
			b.WriteString(report.SubtleStyle.Render("    → " + a.SuggestedAction))
			b.WriteString("\n")
		}
	}
	m.writeActivity(&b)
	return border.Render(strings.TrimRight(b.String(), "\n"))
}

// writeActivity appends the selected project's recent activity timeline.
func (m Model) writeActivity(b *strings.Builder) {
	p, ok := m.selectedProject()
	if !ok || len(p.ActivityLog) == 0 {
		return
	}

	b.WriteString(report.SubtitleStyle.Render("Recent activity"))
	b.WriteString("\n")
	entries := p.ActivityLog
	if len(entries) > 3 {
		entries = entries[:3]
	}
	for _, e := range entries {
		b.WriteString(report.SubtleStyle.Render(fmt.Sprintf("  %s  %s",
			e.Date.Format("Jan 02"), e.Description)))
		b.WriteString("\n")
	}
}

func (m Model) renderStatus() string {
	if m.lastError != nil {
		return report.AtRiskStyle.Render(fmt.Sprintf("Error: %v", m.lastError))
	}
	if m.loading {
		return report.SubtitleStyle.Render("Refreshing...")
	}
	return report.SubtleStyle.Render(
		"tab: switch pane · r: refresh · d: dismiss · ?: help · q: quit")
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"↑/k, ↓/j", "move selection"},
		{"tab", "switch between projects and alerts"},
		{"r", "refresh the snapshot"},
		{"d", "dismiss the selected alert"},
		{"ctrl+l", "clear screen"},
		{"?", "close help"},
		{"q, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(report.TitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", row[0], row[1]))
	}
	return b.String()
}
