package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
)

// Formatter renders snapshots for terminal display.
type Formatter struct{}

// NewFormatter creates a CLI report formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatSnapshot renders the full report: header, critical summary, one
// section per project with its visible alerts.
func (f *Formatter) FormatSnapshot(projects []model.Project, alerts []model.Alert, ref time.Time) string {
	var sections []string

	header := TitleStyle.Render("Client Pulse") + "\n" +
		SubtitleStyle.Render(fmt.Sprintf("Project health as of %s · %d projects", ref.Format("2006-01-02"), len(projects)))
	sections = append(sections, header)

	visible := VisibleAlerts(projects, alerts)
	if summary := f.formatCriticalSummary(visible); summary != "" {
		sections = append(sections, summary)
	}

	for i := range projects {
		sections = append(sections, f.formatProject(&projects[i], visible))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// formatCriticalSummary boxes the count of high-severity alerts needing
// attention today.
func (f *Formatter) formatCriticalSummary(visible []model.Alert) string {
	counts := CountBySeverity(visible)
	high := counts[model.SeverityHigh]
	if high == 0 {
		return HealthyStyle.Render("No critical alerts. All projects manageable.")
	}

	line := AtRiskStyle.Render(fmt.Sprintf("%d critical alert(s) need attention today", high))
	return BoxStyle.Render(line)
}

func (f *Formatter) formatProject(p *model.Project, visible []model.Alert) string {
	var b strings.Builder

	badge := HealthStyle(string(p.Health)).Render(string(p.Health))
	fmt.Fprintf(&b, "%s  %s\n", badge, p.Name)
	fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render(fmt.Sprintf("Owner: %s · Milestone: %s (%s)",
		p.Owner, p.NextMilestone.Name, p.NextMilestone.DueDate.Format("2006-01-02"))))

	if latest := p.LatestEmail(); latest != nil {
		fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render(fmt.Sprintf("Latest sentiment: %d/100", latest.SentimentScore)))
	}
	if p.Analysis != nil && p.Analysis.Summary != "" {
		fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render("Analysis: "+p.Analysis.Summary))
	}

	alerts := ProjectAlerts(p.ID, visible)
	if len(alerts) == 0 {
		b.WriteString(SubtleStyle.Render("  No open alerts."))
		return b.String()
	}

	for _, a := range alerts {
		style := SeverityStyle(string(a.Severity))
		fmt.Fprintf(&b, "  %s %s\n", style.Render(fmt.Sprintf("[%s %s]", a.Severity, a.Type)), a.Message)
		fmt.Fprintf(&b, "    %s\n", SubtleStyle.Render("→ "+a.SuggestedAction))
	}

	return strings.TrimRight(b.String(), "\n")
}
