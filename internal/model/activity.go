package model

import "time"

// ActivityType categorizes an activity log entry.
type ActivityType string

// Activity type constants.
const (
	ActivityEmail     ActivityType = "Email"
	ActivityMilestone ActivityType = "Milestone"
	ActivityAlert     ActivityType = "Alert"
	ActivityNote      ActivityType = "Note"
)

// ActivityEntry is one human-readable event in a project's append-only
// timeline. Newest entries are prepended by convention.
type ActivityEntry struct {
	Date        time.Time    `json:"date"`
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	User        string       `json:"user"`
}
