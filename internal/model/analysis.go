package model

// RiskCategory is the analyzer's classification of where a project's primary
// risk lives.
type RiskCategory string

// Risk category constants.
const (
	RiskCommunication RiskCategory = "Communication"
	RiskTechnical     RiskCategory = "Technical"
	RiskTimeline      RiskCategory = "Timeline"
	RiskNone          RiskCategory = "None"
)

// Trend describes the direction a project's situation is moving.
type Trend string

// Trend constants.
const (
	TrendImproving Trend = "Improving"
	TrendStable    Trend = "Stable"
	TrendDeclining Trend = "Declining"
)

// Analysis is the richer per-project assessment produced by the external
// analyzer. When present it supersedes the local sentiment heuristic for the
// whole project.
type Analysis struct {
	SentimentScore int          `json:"sentimentScore"`
	AtRisk         bool         `json:"atRisk"`
	RiskCategory   RiskCategory `json:"riskCategory"`
	Summary        string       `json:"summary"`
	Trend          Trend        `json:"trend"`
}

// NeutralAnalysis is the assessment used when a project has no recent
// communications to analyze.
func NeutralAnalysis() Analysis {
	return Analysis{
		SentimentScore: 50,
		AtRisk:         false,
		RiskCategory:   RiskNone,
		Summary:        "No recent communications.",
		Trend:          TrendStable,
	}
}
