package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/client-pulse/internal/hubspot"
	"github.com/Veraticus/client-pulse/internal/monitor"
)

var ref = time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := defaultConfig()
	cfg.Monitor = monitor.New(hubspot.NewMockSource())
	cfg.Clock = clockwork.NewFakeClockAt(ref)
	return newModel(cfg)
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)

	msg := m.loadSnapshot()()
	snap, ok := msg.(snapshotMsg)
	require.True(t, ok)
	require.NoError(t, snap.err)

	updated, _ := m.Update(snap)
	return updated.(Model)
}

func TestSnapshotPopulatesTable(t *testing.T) {
	m := loadedModel(t)

	assert.True(t, m.ready)
	assert.False(t, m.loading)
	require.Len(t, m.projects.Rows(), 4)
	assert.Equal(t, "Acme Corp Onboarding", m.projects.Rows()[0][0])
	assert.Equal(t, "On Track", m.projects.Rows()[0][1])
}

func TestSnapshotErrorKeepsLoadingView(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(snapshotMsg{err: assert.AnError})
	m = updated.(Model)

	assert.False(t, m.ready)
	assert.Error(t, m.lastError)
	assert.Contains(t, m.View(), "Failed to load")
}

func TestTabSwitchesPane(t *testing.T) {
	m := loadedModel(t)
	require.Equal(t, PaneProjects, m.pane)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, PaneAlerts, m.pane)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, PaneProjects, m.pane)
}

func TestAlertPaneTracksSelectedProject(t *testing.T) {
	m := loadedModel(t)

	// First project is healthy, no alerts.
	assert.Empty(t, m.alerts)

	// Move down to Global Tech, which carries two alerts.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = updated.(Model)
	require.Len(t, m.alerts, 2)
	assert.Equal(t, "milestone-critical-2", m.alerts[0].ID)
}

func TestAlertNavigationStaysInBounds(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	require.Equal(t, PaneAlerts, m.pane)

	for range 5 {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
		m = updated.(Model)
	}
	assert.Equal(t, len(m.alerts)-1, m.alertIdx)

	for range 5 {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
		m = updated.(Model)
	}
	assert.Equal(t, 0, m.alertIdx)
}

func TestQuitKey(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsAlertsForSelection(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Client Pulse")
	assert.Contains(t, view, "Global Tech")
	assert.Contains(t, view, "At Risk")
}

func TestHelpToggle(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Keyboard shortcuts")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(Model)
	assert.NotContains(t, m.View(), "Keyboard shortcuts")
}
