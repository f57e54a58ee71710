package hubspot

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mapNow = time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)

func TestMapDeal(t *testing.T) {
	deal := Deal{
		ID: "9001",
		Properties: DealProperties{
			DealName:         "Global Tech Implementation",
			CloseDate:        "2024-02-20T00:00:00Z",
			OwnerID:          "42",
			NotesLastUpdated: "2024-02-15T00:00:00Z",
			Description:      "Client reports the integration is broken.",
		},
	}

	comm := Communication{ID: "101"}
	comm.Properties.Body = "<p>We are <b>frustrated</b> with the delays.</p>"
	comm.Properties.Subject = "Delays"
	comm.Properties.Timestamp = "2024-02-19T10:00:00Z"

	p := mapDeal(deal, []Communication{comm}, mapNow)

	assert.Equal(t, "9001", p.ID)
	assert.Equal(t, "Global Tech Implementation", p.Name)
	assert.Equal(t, model.HealthOnTrack, p.Health)
	assert.Equal(t, "Close Date", p.NextMilestone.Name)
	assert.Equal(t, model.MilestonePending, p.NextMilestone.Status)
	assert.Equal(t, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), p.NextMilestone.DueDate)
	assert.Equal(t, "42", p.Owner)

	// Newest first: the communication (Feb 19) ahead of the description (Feb 15).
	require.Len(t, p.Emails, 2)
	assert.Equal(t, "c-101", p.Emails[0].ID)
	assert.Equal(t, "We are frustrated with the delays.", p.Emails[0].Body)
	assert.Equal(t, 35, p.Emails[0].SentimentScore) // one negative term
	assert.Equal(t, "e-9001", p.Emails[1].ID)
	assert.Equal(t, 35, p.Emails[1].SentimentScore) // "broken"
}

func TestMapDealDefaults(t *testing.T) {
	p := mapDeal(Deal{ID: "1", Properties: DealProperties{}}, nil, mapNow)

	assert.Equal(t, "Untitled Project", p.Name)
	assert.Equal(t, "Unassigned", p.Owner)
	// Missing close date normalized to now: never overdue, fail open.
	assert.Equal(t, mapNow, p.NextMilestone.DueDate)
	assert.Equal(t, mapNow, p.LastActivityDate)
	assert.Empty(t, p.Emails)
	assert.NotNil(t, p.DismissedAlerts)
	assert.NotNil(t, p.ActivityLog)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "rfc3339", input: "2024-02-19T10:00:00Z", want: time.Date(2024, 2, 19, 10, 0, 0, 0, time.UTC)},
		{name: "calendar date", input: "2024-02-19", want: time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC)},
		{name: "epoch millis", input: "1708336800000", want: time.Date(2024, 2, 19, 10, 0, 0, 0, time.UTC)},
		{name: "empty", input: "", want: time.Time{}},
		{name: "garbage", input: "soon", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTimestamp(tt.input))
		})
	}
}

func TestMockSourceClonesFixtures(t *testing.T) {
	source := NewMockSource()

	first, err := source.GetProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 4)

	first[1].Health = model.HealthDelayed
	first[1].Emails[0].SentimentScore = 99
	first[1].DismissedAlerts = append(first[1].DismissedAlerts, "x")

	second, err := source.GetProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.HealthAtRisk, second[1].Health)
	assert.Equal(t, 30, second[1].Emails[0].SentimentScore)
	assert.Empty(t, second[1].DismissedAlerts)
}
