package model

import "fmt"

// AlertType categorizes the condition an alert describes.
type AlertType string

// Alert type constants.
const (
	AlertRisk        AlertType = "Risk"
	AlertOpportunity AlertType = "Opportunity"
	AlertStalled     AlertType = "Stalled"
	AlertBlocker     AlertType = "Blocker"
)

// Severity ranks how urgently an alert needs attention.
type Severity string

// Severity constants.
const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Rank returns a numeric weight for severity ordering; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Alert is a generated, severity-ranked notice describing a risk condition
// and a suggested remediation. IDs are deterministic per rule and project so
// repeated evaluation of an unchanged snapshot produces stable IDs.
type Alert struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"projectId"`
	Type            AlertType `json:"type"`
	Severity        Severity  `json:"severity"`
	Message         string    `json:"message"`
	SuggestedAction string    `json:"suggestedAction"`
}

// AlertID derives the stable identifier for a rule firing against a project.
func AlertID(rule, projectID string) string {
	return fmt.Sprintf("%s-%s", rule, projectID)
}
