package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/Veraticus/client-pulse/internal/monitor"
	"github.com/Veraticus/client-pulse/internal/report"
)

// Model holds the dashboard state: the latest snapshot, the project table,
// and the alert pane for the selected project.
type Model struct {
	monitor   *monitor.Monitor
	clock     clockwork.Clock
	keymap    KeyMap
	snap      monitor.Snapshot
	projects  table.Model
	alerts    []model.Alert
	lastError error
	alertIdx  int
	width     int
	height    int
	pane      Pane
	loading   bool
	showHelp  bool
	quitting  bool
	ready     bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	columns := []table.Column{
		{Title: "Project", Width: 28},
		{Title: "Health", Width: 10},
		{Title: "Owner", Width: 16},
		{Title: "Milestone", Width: 24},
		{Title: "Sentiment", Width: 9},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	return Model{
		monitor:  cfg.Monitor,
		clock:    cfg.Clock,
		keymap:   DefaultKeyMap(),
		projects: t,
		pane:     PaneProjects,
		loading:  true,
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.loadSnapshot())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case snapshotMsg:
		m.loading = false
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.ready = true
		m.snap = msg.snap
		m.projects.SetRows(projectRows(msg.snap.Projects))
		m.refreshAlertPane()
		return m, nil

	case dismissedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		return m, m.loadSnapshot()

	case errorMsg:
		m.lastError = fmt.Errorf("%s: %w", msg.context, msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	return m, cmd
}

// handleKey routes keyboard input by focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen

	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		return m, m.loadSnapshot()

	case key.Matches(msg, m.keymap.Tab):
		if m.pane == PaneProjects {
			m.pane = PaneAlerts
			m.projects.Blur()
		} else {
			m.pane = PaneProjects
			m.projects.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Dismiss):
		if alert, ok := m.selectedAlert(); ok {
			return m, m.dismissAlert(alert.ProjectID, alert.ID)
		}
		return m, nil
	}

	if m.pane == PaneAlerts {
		switch {
		case key.Matches(msg, m.keymap.Up):
			if m.alertIdx > 0 {
				m.alertIdx--
			}
		case key.Matches(msg, m.keymap.Down):
			if m.alertIdx < len(m.alerts)-1 {
				m.alertIdx++
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	m.refreshAlertPane()
	return m, cmd
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	h := m.height - 14
	if h < 4 {
		h = 4
	}
	m.projects.SetHeight(h)
}

// refreshAlertPane recomputes the visible alerts for the selected project.
func (m *Model) refreshAlertPane() {
	p, ok := m.selectedProject()
	if !ok {
		m.alerts = nil
		m.alertIdx = 0
		return
	}

	m.alerts = report.VisibleAlerts(
		[]model.Project{*p},
		report.ProjectAlerts(p.ID, m.snap.Alerts),
	)
	if m.alertIdx >= len(m.alerts) {
		m.alertIdx = 0
	}
}

func (m Model) selectedProject() (*model.Project, bool) {
	idx := m.projects.Cursor()
	if idx < 0 || idx >= len(m.snap.Projects) {
		return nil, false
	}
	return &m.snap.Projects[idx], true
}

func (m Model) selectedAlert() (model.Alert, bool) {
	if m.alertIdx < 0 || m.alertIdx >= len(m.alerts) {
		return model.Alert{}, false
	}
	return m.alerts[m.alertIdx], true
}

func projectRows(projects []model.Project) []table.Row {
	rows := make([]table.Row, 0, len(projects))
	for _, p := range projects {
		sentiment := "-"
		if latest := p.LatestEmail(); latest != nil {
			sentiment = fmt.Sprintf("%d", latest.SentimentScore)
		}
		rows = append(rows, table.Row{
			p.Name,
			string(p.Health),
			p.Owner,
			p.NextMilestone.Name,
			sentiment,
		})
	}
	return rows
}
