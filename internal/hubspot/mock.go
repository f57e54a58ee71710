package hubspot

import (
	"context"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
)

// MockSource serves a fixed demo snapshot without touching the CRM. The
// fixture dates cluster around 2024-02-21, the reference time the demo
// walkthrough uses.
type MockSource struct{}

// NewMockSource creates a demo project source.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// GetProjects returns a fresh copy of the demo snapshot. Each call clones the
// fixtures so callers can mutate health and logs freely.
func (m *MockSource) GetProjects(_ context.Context) ([]model.Project, error) {
	fixtures := demoProjects()
	projects := make([]model.Project, len(fixtures))
	for i, p := range fixtures {
		projects[i] = cloneProject(p)
	}
	return projects, nil
}

func cloneProject(p model.Project) model.Project {
	clone := p
	clone.Tasks = append([]model.Task(nil), p.Tasks...)
	clone.Emails = append([]model.Communication(nil), p.Emails...)
	clone.DismissedAlerts = append([]string(nil), p.DismissedAlerts...)
	clone.ActivityLog = append([]model.ActivityEntry(nil), p.ActivityLog...)
	return clone
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func demoProjects() []model.Project {
	return []model.Project{
		{
			ID:     "1",
			Name:   "Acme Corp Onboarding",
			Health: model.HealthOnTrack,
			NextMilestone: model.Milestone{
				Name:    "Kickoff Meeting",
				DueDate: day(2024, 3, 1),
				Status:  model.MilestonePending,
			},
			Tasks: []model.Task{
				{ID: "t1", Name: "Submit Intake Form", Assignee: model.AssigneeClient, DueDate: day(2024, 2, 28), Status: model.TaskPending},
				{ID: "t2", Name: "Prepare Slide Deck", Assignee: model.AssigneeUs, DueDate: day(2024, 2, 29), Status: model.TaskPending},
			},
			LastActivityDate: day(2024, 2, 25),
			Owner:            "Taro Yamada",
			Emails:           []model.Communication{},
			DismissedAlerts:  []string{},
			ActivityLog: []model.ActivityEntry{
				{ID: "l1", Date: day(2024, 2, 25), Type: model.ActivityNote, Description: "Intake form sent to client.", User: "Taro Yamada"},
			},
		},
		{
			ID:     "2",
			Name:   "Global Tech Implementation",
			Health: model.HealthAtRisk,
			NextMilestone: model.Milestone{
				Name:    "API Integration",
				DueDate: day(2024, 2, 20), // overdue
				Status:  model.MilestonePending,
			},
			Tasks: []model.Task{
				{ID: "t3", Name: "Provide API Keys", Assignee: model.AssigneeClient, DueDate: day(2024, 2, 18), Status: model.TaskPending},
			},
			LastActivityDate: day(2024, 2, 15),
			Owner:            "Hanako Suzuki",
			Emails: []model.Communication{
				{
					ID:             "e2",
					Subject:        "API Keys delay",
					Body:           "We are struggling to get the keys from the security team.",
					From:           "dev@globaltech.com",
					Date:           time.Date(2024, 2, 19, 10, 0, 0, 0, time.UTC),
					SentimentScore: 30,
				},
			},
			DismissedAlerts: []string{},
			ActivityLog: []model.ActivityEntry{
				{ID: "l2", Date: day(2024, 2, 19), Type: model.ActivityEmail, Description: "Received email re: API Keys delay", User: "Client"},
				{ID: "l3", Date: day(2024, 2, 15), Type: model.ActivityMilestone, Description: "API Integration milestone set.", User: "Hanako Suzuki"},
			},
		},
		{
			ID:     "3",
			Name:   "StartUp Inc Pilot",
			Health: model.HealthDelayed,
			NextMilestone: model.Milestone{
				Name:    "User Training",
				DueDate: day(2024, 2, 10),
				Status:  model.MilestonePending,
			},
			Tasks:            []model.Task{},
			LastActivityDate: day(2024, 1, 20),
			Owner:            "Taro Yamada",
			Emails:           []model.Communication{},
			DismissedAlerts:  []string{},
			ActivityLog:      []model.ActivityEntry{},
		},
		{
			ID:     "4",
			Name:   "MegaCorp Expansion",
			Health: model.HealthAtRisk,
			NextMilestone: model.Milestone{
				Name:    "Go Live",
				DueDate: day(2024, 2, 15),
				Status:  model.MilestonePending,
			},
			Tasks:            []model.Task{},
			LastActivityDate: day(2024, 2, 18),
			Owner:            "Hanako Suzuki",
			Emails: []model.Communication{
				{
					ID:             "e3",
					Subject:        "URGENT: Broken promises",
					Body:           "This is unacceptable. We missed the go-live and nobody told us why.",
					From:           "vp@megacorp.com",
					Date:           time.Date(2024, 2, 18, 9, 0, 0, 0, time.UTC),
					SentimentScore: 20,
				},
			},
			DismissedAlerts: []string{},
			ActivityLog:     []model.ActivityEntry{},
		},
	}
}
