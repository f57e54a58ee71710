package report

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAlerts() []model.Alert {
	return []model.Alert{
		{ID: "milestone-overdue-p1", ProjectID: "p1", Type: model.AlertRisk, Severity: model.SeverityMedium, Message: "overdue"},
		{ID: "stalled-p1", ProjectID: "p1", Type: model.AlertStalled, Severity: model.SeverityMedium, Message: "stalled"},
		{ID: "milestone-critical-p2", ProjectID: "p2", Type: model.AlertRisk, Severity: model.SeverityHigh, Message: "critical"},
		{ID: "milestone-soon-p3", ProjectID: "p3", Type: model.AlertRisk, Severity: model.SeverityLow, Message: "soon"},
	}
}

func TestVisibleAlertsOrdersBySeverity(t *testing.T) {
	projects := []model.Project{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}

	visible := VisibleAlerts(projects, sampleAlerts())

	ids := make([]string, 0, len(visible))
	for _, a := range visible {
		ids = append(ids, a.ID)
	}
	// High first, then the two mediums in original rule order, then low.
	assert.Equal(t, []string{"milestone-critical-p2", "milestone-overdue-p1", "stalled-p1", "milestone-soon-p3"}, ids)
}

func TestVisibleAlertsFiltersDismissed(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", DismissedAlerts: []string{"stalled-p1"}},
		{ID: "p2"},
		{ID: "p3"},
	}

	visible := VisibleAlerts(projects, sampleAlerts())

	for _, a := range visible {
		assert.NotEqual(t, "stalled-p1", a.ID)
	}
	assert.Len(t, visible, 3)
}

func TestVisibleAlertsDismissalScopedToProject(t *testing.T) {
	// p2 dismissing an ID used by p1 must not hide p1's alert.
	projects := []model.Project{
		{ID: "p1"},
		{ID: "p2", DismissedAlerts: []string{"milestone-overdue-p1"}},
		{ID: "p3"},
	}

	visible := VisibleAlerts(projects, sampleAlerts())
	assert.Len(t, visible, 4)
}

func TestProjectAlerts(t *testing.T) {
	alerts := ProjectAlerts("p1", sampleAlerts())
	require.Len(t, alerts, 2)
	assert.Equal(t, "milestone-overdue-p1", alerts[0].ID)
	assert.Equal(t, "stalled-p1", alerts[1].ID)
}

func TestCountBySeverity(t *testing.T) {
	counts := CountBySeverity(sampleAlerts())
	assert.Equal(t, 1, counts[model.SeverityHigh])
	assert.Equal(t, 2, counts[model.SeverityMedium])
	assert.Equal(t, 1, counts[model.SeverityLow])
}

func TestFormatSnapshot(t *testing.T) {
	ref := time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{
			ID:     "p2",
			Name:   "MegaCorp Expansion",
			Health: model.HealthAtRisk,
			Owner:  "Hanako Suzuki",
			NextMilestone: model.Milestone{
				Name:    "Go Live",
				DueDate: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
				Status:  model.MilestonePending,
			},
			Emails: []model.Communication{{ID: "e1", SentimentScore: 20}},
		},
	}
	alerts := []model.Alert{
		{
			ID:              "milestone-critical-p2",
			ProjectID:       "p2",
			Type:            model.AlertRisk,
			Severity:        model.SeverityHigh,
			Message:         "CRITICAL: Milestone overdue AND client frustration detected.",
			SuggestedAction: "Urgent: Call client to de-escalate.",
		},
	}

	out := NewFormatter().FormatSnapshot(projects, alerts, ref)

	assert.Contains(t, out, "Client Pulse")
	assert.Contains(t, out, "2024-02-21")
	assert.Contains(t, out, "MegaCorp Expansion")
	assert.Contains(t, out, "At Risk")
	assert.Contains(t, out, "critical alert(s)")
	assert.Contains(t, out, "Call client to de-escalate")
	assert.True(t, strings.Contains(out, "Latest sentiment: 20/100"))
}

func TestFormatSnapshotNoAlerts(t *testing.T) {
	ref := time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{ID: "p1", Name: "Acme Corp Onboarding", Health: model.HealthOnTrack},
	}

	out := NewFormatter().FormatSnapshot(projects, nil, ref)

	assert.Contains(t, out, "No critical alerts")
	assert.Contains(t, out, "No open alerts")
}
