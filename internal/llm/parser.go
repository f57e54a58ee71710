package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/client-pulse/internal/model"
)

// parseAnalysis extracts a model.Analysis from raw LLM output. Models
// sometimes wrap the JSON in markdown fences or add commentary around it, so
// the first balanced object in the text is what gets parsed.
func parseAnalysis(content string) (model.Analysis, error) {
	content = extractJSON(cleanMarkdownWrapper(content))

	var jsonResp struct {
		SentimentScore int    `json:"sentimentScore"`
		AtRisk         bool   `json:"atRisk"`
		RiskCategory   string `json:"riskCategory"`
		Summary        string `json:"summary"`
		Trend          string `json:"trend"`
	}

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return model.Analysis{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return model.Analysis{
		SentimentScore: clampScore(jsonResp.SentimentScore),
		AtRisk:         jsonResp.AtRisk,
		RiskCategory:   parseRiskCategory(jsonResp.RiskCategory),
		Summary:        jsonResp.Summary,
		Trend:          parseTrend(jsonResp.Trend),
	}, nil
}

// cleanMarkdownWrapper strips markdown code fences the model may have added
// around its JSON output.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// extractJSON returns the span from the first '{' to the last '}', or the
// input unchanged when no object is present (unmarshal reports the error).
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return content
	}
	return content[start : end+1]
}

func parseRiskCategory(s string) model.RiskCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "communication":
		return model.RiskCommunication
	case "technical":
		return model.RiskTechnical
	case "timeline":
		return model.RiskTimeline
	default:
		return model.RiskNone
	}
}

func parseTrend(s string) model.Trend {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "improving":
		return model.TrendImproving
	case "declining":
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
