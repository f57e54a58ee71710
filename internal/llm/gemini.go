package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/client-pulse/internal/common"
	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/Veraticus/client-pulse/internal/service"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiClient implements the Client interface for the Google Gemini API.
type geminiClient struct {
	httpClient  *http.Client
	limiter     *rateLimiter
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// newGeminiClient creates a new Gemini API client.
func newGeminiClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is required", common.ErrMissingConfig)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	return &geminiClient{
		apiKey:      cfg.APIKey,
		baseURL:     geminiBaseURL,
		model:       modelName,
		temperature: temperature,
		maxTokens:   maxTokens,
		limiter:     newRateLimiter(cfg.RequestsPerMinute),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Analyze sends a project's communications to Gemini and parses the
// assessment. A project with no communications is rated neutral without
// calling the API.
func (c *geminiClient) Analyze(ctx context.Context, req service.AnalysisRequest) (model.Analysis, error) {
	if len(req.Messages) == 0 {
		return model.NeutralAnalysis(), nil
	}

	if err := c.limiter.wait(ctx); err != nil {
		return model.Analysis{}, err
	}

	requestBody := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": buildAnalysisPrompt(req)},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     c.temperature,
			"maxOutputTokens": c.maxTokens,
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return model.Analysis{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("%w: %v", common.ErrAnalyzerUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return model.Analysis{}, common.ErrRateLimit
	}
	if resp.StatusCode != http.StatusOK {
		return model.Analysis{}, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return model.Analysis{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return model.Analysis{}, fmt.Errorf("no candidates returned")
	}

	return parseAnalysis(response.Candidates[0].Content.Parts[0].Text)
}

// buildAnalysisPrompt renders the analysis instructions for one project.
func buildAnalysisPrompt(req service.AnalysisRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analyze the following communications for an onboarding project called %q.\n", req.ProjectName)
	if !req.Deadline.IsZero() {
		fmt.Fprintf(&sb, "The current project deadline is %s.\n", req.Deadline.Format("2006-01-02"))
	}
	sb.WriteString("\nCommunications (Newest first):\n")
	for i, m := range req.Messages {
		if i > 0 {
			sb.WriteString("---\n")
		}
		fmt.Fprintf(&sb, "Date: %s\nBody: %s\n", m.Date.Format("2006-01-02"), m.Body)
	}
	sb.WriteString(`
Determine:
1. sentimentScore: (0 to 100, where 0 is extremely angry/frustrated and 100 is extremely happy).
2. atRisk: (true/false) based on blockers or missed deadlines.
3. riskCategory: Choose one: 'Communication', 'Technical', 'Timeline', or 'None'.
4. summary: A 1-sentence summary of the current health or primary blocker.
5. trend: Based on these messages, is the situation 'Improving', 'Stable', or 'Declining'?

Return ONLY a valid JSON object.`)

	return sb.String()
}

// geminiResponse represents the generateContent API response structure.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}
