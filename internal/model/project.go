// Package model defines the core domain models used throughout the application.
package model

import "time"

// Health is the coarse three-value classification of a project's risk state.
type Health string

// Health constants.
const (
	HealthOnTrack Health = "On Track"
	HealthAtRisk  Health = "At Risk"
	HealthDelayed Health = "Delayed"
)

// MilestoneStatus indicates whether the next milestone is still open.
type MilestoneStatus string

// Milestone status constants.
const (
	MilestonePending   MilestoneStatus = "Pending"
	MilestoneCompleted MilestoneStatus = "Completed"
)

// Milestone is the single next scheduled deliverable tracked per project.
type Milestone struct {
	DueDate time.Time       `json:"dueDate"`
	Name    string          `json:"name"`
	Status  MilestoneStatus `json:"status"`
}

// SentimentSource records which mechanism produced the sentiment scores
// currently attached to a project's communications.
type SentimentSource string

// Sentiment source constants.
const (
	SentimentLocalHeuristic   SentimentSource = "LOCAL_HEURISTIC"
	SentimentExternalAnalysis SentimentSource = "EXTERNAL_ANALYSIS"
)

// Project represents one monitored client engagement derived from a CRM deal.
// Instances are constructed fresh on every fetch cycle; nothing is carried
// across cycles beyond what the snapshot itself embeds.
type Project struct {
	LastActivityDate time.Time       `json:"lastActivityDate"`
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Owner            string          `json:"owner"`
	Health           Health          `json:"health"`
	NextMilestone    Milestone       `json:"nextMilestone"`
	SentimentSource  SentimentSource `json:"sentimentSource,omitempty"`
	RiskCategory     RiskCategory    `json:"riskCategory,omitempty"`
	Trend            Trend           `json:"trend,omitempty"`
	Analysis         *Analysis       `json:"analysis,omitempty"`
	Tasks            []Task          `json:"tasks"`
	Emails           []Communication `json:"emails"`
	DismissedAlerts  []string        `json:"dismissedAlerts"`
	ActivityLog      []ActivityEntry `json:"activityLog"`
}

// LatestEmail returns the most recent communication, or nil when the project
// has none. Emails are newest-first by convention; producers sort descending
// by date before handing the snapshot to the engine.
func (p *Project) LatestEmail() *Communication {
	if len(p.Emails) == 0 {
		return nil
	}
	return &p.Emails[0]
}

// IsDismissed reports whether the user has suppressed the given alert ID.
func (p *Project) IsDismissed(alertID string) bool {
	for _, id := range p.DismissedAlerts {
		if id == alertID {
			return true
		}
	}
	return false
}

// PrependActivity inserts an entry at the head of the activity log, keeping
// the newest-first convention.
func (p *Project) PrependActivity(entry ActivityEntry) {
	p.ActivityLog = append([]ActivityEntry{entry}, p.ActivityLog...)
}

// ApplyAnalysis merges an external analyzer result onto the project. The
// analyzer's sentiment score supersedes the local heuristic for every
// communication belonging to the project, and the enrichment fields are
// populated. Callers resolve this once, before the engine runs.
func (p *Project) ApplyAnalysis(a Analysis) {
	p.Analysis = &a
	p.RiskCategory = a.RiskCategory
	p.Trend = a.Trend
	p.SentimentSource = SentimentExternalAnalysis
	for i := range p.Emails {
		p.Emails[i].SentimentScore = a.SentimentScore
	}
}
