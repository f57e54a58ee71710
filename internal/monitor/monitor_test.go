package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/client-pulse/internal/hubspot"
	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/Veraticus/client-pulse/internal/service"
	"github.com/Veraticus/client-pulse/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ref = time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)

type stubAnalyzer struct {
	analysis model.Analysis
	err      error
	calls    int
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ service.AnalysisRequest) (model.Analysis, error) {
	s.calls++
	if s.err != nil {
		return model.Analysis{}, s.err
	}
	return s.analysis, nil
}

func newTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSnapshotDemoData(t *testing.T) {
	m := New(hubspot.NewMockSource())

	snap, err := m.Snapshot(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, snap.Projects, 4)

	// Acme: healthy, nothing due within three days.
	assert.Equal(t, model.HealthOnTrack, snap.Projects[0].Health)

	// Global Tech: overdue milestone + sentiment 30 + overdue client task.
	assert.Equal(t, model.HealthAtRisk, snap.Projects[1].Health)

	// StartUp Inc: overdue milestone, no emails, 32 days quiet.
	assert.Equal(t, model.HealthDelayed, snap.Projects[2].Health)

	// MegaCorp: overdue milestone + sentiment 20.
	assert.Equal(t, model.HealthAtRisk, snap.Projects[3].Health)

	ids := make([]string, 0, len(snap.Alerts))
	for _, a := range snap.Alerts {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{
		"milestone-critical-2",
		"client-blocker-2",
		"milestone-overdue-3",
		"stalled-3",
		"milestone-critical-4",
	}, ids)
}

func TestSnapshotHydratesDismissals(t *testing.T) {
	db := newTestStorage(t)
	require.NoError(t, db.DismissAlert(context.Background(), "2", "client-blocker-2", ref))

	m := New(hubspot.NewMockSource(), WithStorage(db))

	snap, err := m.Snapshot(context.Background(), ref)
	require.NoError(t, err)

	globalTech := snap.Projects[1]
	assert.True(t, globalTech.IsDismissed("client-blocker-2"))

	// The engine still reports the dismissed alert; suppression is a
	// presentation concern.
	var found bool
	for _, a := range snap.Alerts {
		if a.ID == "client-blocker-2" {
			found = true
		}
	}
	assert.True(t, found)

	// The dismissal's activity entry is merged newest-first.
	require.NotEmpty(t, globalTech.ActivityLog)
	assert.Equal(t, model.ActivityAlert, globalTech.ActivityLog[0].Type)
}

func TestSnapshotExternalAnalysisSupersedesHeuristic(t *testing.T) {
	analyzer := &stubAnalyzer{analysis: model.Analysis{
		SentimentScore: 85,
		AtRisk:         false,
		RiskCategory:   model.RiskNone,
		Summary:        "Client is satisfied.",
		Trend:          model.TrendImproving,
	}}

	m := New(hubspot.NewMockSource(), WithAnalyzer(analyzer))

	snap, err := m.Snapshot(context.Background(), ref)
	require.NoError(t, err)

	// Only the two projects with communications hit the analyzer.
	assert.Equal(t, 2, analyzer.calls)

	// MegaCorp's sentiment 20 was overridden with 85, so its overdue
	// milestone downgrades from critical to plain overdue.
	megaCorp := snap.Projects[3]
	assert.Equal(t, model.SentimentExternalAnalysis, megaCorp.SentimentSource)
	assert.Equal(t, 85, megaCorp.Emails[0].SentimentScore)
	assert.Equal(t, model.HealthDelayed, megaCorp.Health)
	assert.Equal(t, model.TrendImproving, megaCorp.Trend)

	for _, a := range snap.Alerts {
		assert.NotEqual(t, "milestone-critical-4", a.ID)
	}
}

func TestSnapshotAnalyzerFailureFallsBack(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("quota exceeded")}

	m := New(hubspot.NewMockSource(), WithAnalyzer(analyzer))

	snap, err := m.Snapshot(context.Background(), ref)
	require.NoError(t, err)

	// Local heuristic scores stand; MegaCorp stays critical.
	megaCorp := snap.Projects[3]
	assert.Equal(t, model.HealthAtRisk, megaCorp.Health)
	assert.NotEqual(t, model.SentimentExternalAnalysis, megaCorp.SentimentSource)
}

type failingSource struct{}

func (failingSource) GetProjects(_ context.Context) ([]model.Project, error) {
	return nil, errors.New("crm unreachable")
}

func TestSnapshotSourceFailure(t *testing.T) {
	m := New(failingSource{})
	_, err := m.Snapshot(context.Background(), ref)
	require.Error(t, err)
}

func TestDismiss(t *testing.T) {
	db := newTestStorage(t)
	m := New(hubspot.NewMockSource(), WithStorage(db))

	require.NoError(t, m.Dismiss(context.Background(), "2", "client-blocker-2", ref))

	ids, err := db.GetDismissedAlerts(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"client-blocker-2"}, ids)
}

func TestDismissWithoutStorage(t *testing.T) {
	m := New(hubspot.NewMockSource())
	err := m.Dismiss(context.Background(), "2", "client-blocker-2", ref)
	require.Error(t, err)
}
