// Package report renders engine output for a project manager: it applies the
// presentation-layer concerns the engine deliberately leaves out (dismissed
// alert filtering, severity-first ordering) and formats styled terminal
// reports.
package report

import (
	"sort"

	"github.com/Veraticus/client-pulse/internal/model"
)

// VisibleAlerts filters out alerts the user has dismissed on their project
// and orders the remainder highest severity first. Rule order is preserved
// within a severity level so the sort is stable across passes.
func VisibleAlerts(projects []model.Project, alerts []model.Alert) []model.Alert {
	dismissed := make(map[string]map[string]bool, len(projects))
	for _, p := range projects {
		if len(p.DismissedAlerts) == 0 {
			continue
		}
		set := make(map[string]bool, len(p.DismissedAlerts))
		for _, id := range p.DismissedAlerts {
			set[id] = true
		}
		dismissed[p.ID] = set
	}

	visible := make([]model.Alert, 0, len(alerts))
	for _, a := range alerts {
		if set, ok := dismissed[a.ProjectID]; ok && set[a.ID] {
			continue
		}
		visible = append(visible, a)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Severity.Rank() > visible[j].Severity.Rank()
	})
	return visible
}

// ProjectAlerts narrows an alert sequence to one project, preserving order.
func ProjectAlerts(projectID string, alerts []model.Alert) []model.Alert {
	var out []model.Alert
	for _, a := range alerts {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out
}

// CountBySeverity tallies alerts per severity level.
func CountBySeverity(alerts []model.Alert) map[model.Severity]int {
	counts := make(map[model.Severity]int)
	for _, a := range alerts {
		counts[a.Severity]++
	}
	return counts
}
