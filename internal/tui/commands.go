package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const commandTimeout = 60 * time.Second

// loadSnapshot fetches and evaluates a fresh snapshot off the UI goroutine.
func (m Model) loadSnapshot() tea.Cmd {
	mon, clock := m.monitor, m.clock
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		snap, err := mon.Snapshot(ctx, clock.Now())
		return snapshotMsg{snap: snap, err: err}
	}
}

// dismissAlert records a dismissal; the follow-up snapshotMsg repaints.
func (m Model) dismissAlert(projectID, alertID string) tea.Cmd {
	mon, clock := m.monitor, m.clock
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := mon.Dismiss(ctx, projectID, alertID, clock.Now())
		return dismissedMsg{projectID: projectID, alertID: alertID, err: err}
	}
}
