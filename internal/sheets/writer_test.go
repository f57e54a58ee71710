package sheets

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/client-pulse/internal/model"
)

func testWriter() *Writer {
	return &Writer{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
}

func testProjects() []model.Project {
	return []model.Project{
		{
			ID:     "1",
			Name:   "Acme Corp Onboarding",
			Owner:  "Jane",
			Health: model.HealthOnTrack,
			NextMilestone: model.Milestone{
				Name:    "Kickoff Meeting",
				DueDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
				Status:  model.MilestonePending,
			},
			Emails: []model.Communication{{ID: "e1", SentimentScore: 70}},
		},
		{
			ID:              "2",
			Name:            "Global Tech Implementation",
			Owner:           "Sam",
			Health:          model.HealthAtRisk,
			DismissedAlerts: []string{"client-blocker-2"},
		},
	}
}

func testAlerts() []model.Alert {
	return []model.Alert{
		{ID: "client-blocker-2", ProjectID: "2", Type: model.AlertBlocker, Severity: model.SeverityMedium, Message: "Waiting on client"},
		{ID: "milestone-critical-2", ProjectID: "2", Type: model.AlertRisk, Severity: model.SeverityHigh, Message: "Milestone critical", SuggestedAction: "Escalate"},
	}
}

func TestPrepareReportDataSummary(t *testing.T) {
	values := testWriter().prepareReportData(testProjects(), testAlerts(),
		time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC))
	require.NotEmpty(t, values)

	assert.Equal(t, []any{"Client Health Report", "as of Feb 21, 2024"}, values[0])
	assert.Contains(t, values, []any{"Projects", 2})
	assert.Contains(t, values, []any{"On Track", 1})
	assert.Contains(t, values, []any{"At Risk", 1})
	assert.Contains(t, values, []any{"Delayed", 0})

	// The dismissed blocker is excluded from the active alert count.
	assert.Contains(t, values, []any{"Active Alerts", 1, "1 high / 0 medium / 0 low"})
}

func TestPrepareReportDataProjectRows(t *testing.T) {
	values := testWriter().prepareReportData(testProjects(), nil,
		time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, values, []any{
		"Acme Corp Onboarding", "On Track", "Jane", "Kickoff Meeting",
		"2024-03-15", 70, "", "",
	})
	// Zero milestone date renders blank, missing sentiment renders blank.
	assert.Contains(t, values, []any{
		"Global Tech Implementation", "At Risk", "Sam", "", "", "", "", "",
	})
}

func TestPrepareReportDataAlertRows(t *testing.T) {
	values := testWriter().prepareReportData(testProjects(), testAlerts(),
		time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, values, []any{
		"Global Tech Implementation", "High", "Risk", "Milestone critical", "Escalate",
	})
	for _, row := range values {
		if len(row) > 3 {
			assert.NotEqual(t, "Waiting on client", row[3], "dismissed alert leaked into report")
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "service account",
			mutate: func(c *Config) { c.ServiceAccountPath = "/tmp/key.json" },
		},
		{
			name: "oauth",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
		},
		{
			name:    "no auth",
			mutate:  func(_ *Config) {},
			wantErr: "no authentication method",
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/tmp/key.json"
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
			wantErr: "multiple authentication methods",
		},
		{
			name: "bad batch size",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/tmp/key.json"
				c.BatchSize = 0
			},
			wantErr: "batch size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
