// Package monitor orchestrates one full evaluation cycle: fetch the project
// snapshot from the CRM, merge locally recorded dismissals and activity,
// enrich sentiment (external analyzer when configured, local heuristic
// otherwise), and run the rule engine against a single reference time.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Veraticus/client-pulse/internal/engine"
	"github.com/Veraticus/client-pulse/internal/metrics"
	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/Veraticus/client-pulse/internal/sentiment"
	"github.com/Veraticus/client-pulse/internal/service"
)

// Monitor wires the data source, the optional analyzer, and local storage
// into the engine. It holds no snapshot state of its own; every call to
// Snapshot rebuilds the world from the source.
type Monitor struct {
	source   service.ProjectSource
	analyzer service.Analyzer
	storage  service.Storage
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithAnalyzer enables external analysis enrichment.
func WithAnalyzer(a service.Analyzer) Option {
	return func(m *Monitor) { m.analyzer = a }
}

// WithStorage enables dismissal and activity-log persistence.
func WithStorage(s service.Storage) Option {
	return func(m *Monitor) { m.storage = s }
}

// New creates a Monitor reading from the given project source.
func New(source service.ProjectSource, opts ...Option) *Monitor {
	m := &Monitor{source: source}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot is the result of one evaluation pass: the project sequence with
// finalized health, and the flattened alert sequence in engine order.
// Dismissed alerts are present in Alerts; filtering them is the
// presentation layer's job.
type Snapshot struct {
	TakenAt  time.Time       `json:"takenAt"`
	Projects []model.Project `json:"projects"`
	Alerts   []model.Alert   `json:"alerts"`
}

// Snapshot fetches and evaluates the current state of every project against
// the given reference time.
func (m *Monitor) Snapshot(ctx context.Context, ref time.Time) (Snapshot, error) {
	projects, err := m.source.GetProjects(ctx)
	if err != nil {
		metrics.SnapshotsTotal.WithLabelValues("error").Inc()
		return Snapshot{}, fmt.Errorf("failed to fetch projects: %w", err)
	}

	if m.storage != nil {
		if err := m.hydrate(ctx, projects); err != nil {
			metrics.SnapshotsTotal.WithLabelValues("error").Inc()
			return Snapshot{}, err
		}
	}

	if m.analyzer != nil {
		m.analyze(ctx, projects)
	}
	engine.EnrichSentiment(projects, sentiment.Score)

	alerts := engine.RunAnalysis(projects, ref)
	observe(projects, alerts)

	return Snapshot{TakenAt: ref, Projects: projects, Alerts: alerts}, nil
}

// Dismiss records a user's suppression of one alert. It does not re-run the
// rule engine; the next snapshot simply reports the alert as dismissed.
func (m *Monitor) Dismiss(ctx context.Context, projectID, alertID string, now time.Time) error {
	if m.storage == nil {
		return fmt.Errorf("dismissals require storage")
	}
	if err := m.storage.DismissAlert(ctx, projectID, alertID, now); err != nil {
		return fmt.Errorf("failed to dismiss alert: %w", err)
	}
	metrics.DismissalsTotal.Inc()
	slog.Info("Alert dismissed", "project_id", projectID, "alert_id", alertID)
	return nil
}

// hydrate merges locally persisted dismissals and activity entries onto the
// freshly fetched snapshot.
func (m *Monitor) hydrate(ctx context.Context, projects []model.Project) error {
	for i := range projects {
		p := &projects[i]

		dismissed, err := m.storage.GetDismissedAlerts(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to load dismissals for %s: %w", p.ID, err)
		}
		for _, id := range dismissed {
			if !p.IsDismissed(id) {
				p.DismissedAlerts = append(p.DismissedAlerts, id)
			}
		}

		local, err := m.storage.GetActivityLog(ctx, p.ID, 0)
		if err != nil {
			return fmt.Errorf("failed to load activity log for %s: %w", p.ID, err)
		}
		if len(local) > 0 {
			p.ActivityLog = append(local, p.ActivityLog...)
			sort.SliceStable(p.ActivityLog, func(a, b int) bool {
				return p.ActivityLog[a].Date.After(p.ActivityLog[b].Date)
			})
		}
	}
	return nil
}

// analyze asks the external analyzer for a richer assessment of each project
// that has communications. Failures are logged and the project falls back to
// the local heuristic; the engine never observes analyzer errors.
func (m *Monitor) analyze(ctx context.Context, projects []model.Project) {
	for i := range projects {
		p := &projects[i]
		if len(p.Emails) == 0 {
			continue
		}

		analysis, err := m.analyzer.Analyze(ctx, service.AnalysisRequest{
			ProjectName: p.Name,
			Deadline:    p.NextMilestone.DueDate,
			Messages:    p.Emails,
		})
		if err != nil {
			metrics.AnalyzerRequestsTotal.WithLabelValues("error").Inc()
			slog.Warn("External analysis failed, falling back to local heuristic",
				"project_id", p.ID,
				"error", err)
			continue
		}

		metrics.AnalyzerRequestsTotal.WithLabelValues("ok").Inc()
		p.ApplyAnalysis(analysis)
	}
}

func observe(projects []model.Project, alerts []model.Alert) {
	metrics.SnapshotsTotal.WithLabelValues("ok").Inc()

	byHealth := map[model.Health]int{
		model.HealthOnTrack: 0,
		model.HealthAtRisk:  0,
		model.HealthDelayed: 0,
	}
	for _, p := range projects {
		byHealth[p.Health]++
	}
	for health, count := range byHealth {
		metrics.ProjectsByHealth.WithLabelValues(string(health)).Set(float64(count))
	}

	bySeverity := map[model.Severity]int{
		model.SeverityHigh:   0,
		model.SeverityMedium: 0,
		model.SeverityLow:    0,
	}
	for _, a := range alerts {
		bySeverity[a.Severity]++
	}
	for severity, count := range bySeverity {
		metrics.AlertsGenerated.WithLabelValues(string(severity)).Set(float64(count))
	}
}
