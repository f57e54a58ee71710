package hubspot

import (
	"html"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/Veraticus/client-pulse/internal/sentiment"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// mapDeal converts one CRM deal and its communications into a project
// snapshot. The deal close date becomes the pending milestone; a missing
// close date is normalized to now so the engine never sees a malformed date.
// The deal description, when present, is attached as an extra communication
// so a deal without logged emails still carries a sentiment signal.
func mapDeal(deal Deal, comms []Communication, now time.Time) model.Project {
	props := deal.Properties

	name := props.DealName
	if name == "" {
		name = "Untitled Project"
	}

	dueDate := parseTimestamp(props.CloseDate)
	if dueDate.IsZero() {
		dueDate = now
	}

	lastActivity := parseTimestamp(props.NotesLastUpdated)
	if lastActivity.IsZero() {
		lastActivity = now
	}

	owner := props.OwnerID
	if owner == "" {
		owner = "Unassigned"
	}

	emails := make([]model.Communication, 0, len(comms)+1)
	for _, c := range comms {
		body := stripHTML(c.Properties.Body)
		date := parseTimestamp(c.Properties.Timestamp)
		if date.IsZero() {
			date = now
		}
		emails = append(emails, model.Communication{
			ID:             "c-" + c.ID,
			Subject:        c.Properties.Subject,
			Body:           body,
			From:           "HubSpot",
			Date:           date,
			SentimentScore: sentiment.Score(body),
		})
	}

	if props.Description != "" {
		emails = append(emails, model.Communication{
			ID:             "e-" + deal.ID,
			Subject:        "Deal Description / Note",
			Body:           props.Description,
			From:           "HubSpot",
			Date:           lastActivity,
			SentimentScore: sentiment.Score(props.Description),
		})
	}

	// Newest-first, the convention the engine expects.
	sort.SliceStable(emails, func(i, j int) bool {
		return emails[i].Date.After(emails[j].Date)
	})

	return model.Project{
		ID:     deal.ID,
		Name:   name,
		Health: model.HealthOnTrack,
		NextMilestone: model.Milestone{
			Name:    "Close Date",
			DueDate: dueDate,
			Status:  model.MilestonePending,
		},
		LastActivityDate: lastActivity,
		Owner:            owner,
		Emails:           emails,
		DismissedAlerts:  []string{},
		ActivityLog:      []model.ActivityEntry{},
	}
}

// parseTimestamp handles the formats HubSpot uses across endpoints: RFC 3339,
// bare calendar dates, and epoch milliseconds. Unparseable input yields the
// zero time; callers substitute a sensible default.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

// stripHTML reduces a rich-text communication body to plain text.
func stripHTML(s string) string {
	return html.UnescapeString(htmlTagPattern.ReplaceAllString(s, ""))
}
