// Package hubspot provides a minimal client for the HubSpot CRM REST API and
// maps CRM deals onto monitored projects.
package hubspot

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
)

const defaultBaseURL = "https://api.hubapi.com"

// dealProperties are the CRM deal fields the mapper needs.
var dealProperties = []string{
	"dealname", "amount", "dealstage", "closedate",
	"hubspot_owner_id", "notes_last_updated", "description",
}

// Client talks to the HubSpot CRM v3/v4 API with a private app access token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	pageLimit  int
}

// NewClient creates a HubSpot API client.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: HubSpot access token is required", common.ErrMissingConfig)
	}

	return &Client{
		token:     token,
		baseURL:   defaultBaseURL,
		pageLimit: 10,
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

// Deal is one CRM deal record.
type Deal struct {
	ID         string         `json:"id"`
	Properties DealProperties `json:"properties"`
}

// DealProperties are the subset of deal fields requested from the API.
type DealProperties struct {
	DealName         string `json:"dealname"`
	Amount           string `json:"amount"`
	DealStage        string `json:"dealstage"`
	CloseDate        string `json:"closedate"`
	OwnerID          string `json:"hubspot_owner_id"`
	NotesLastUpdated string `json:"notes_last_updated"`
	Description      string `json:"description"`
}

// Communication is one raw CRM communication object.
type Communication struct {
	ID         string `json:"id"`
	Properties struct {
		Body      string `json:"hs_communication_body"`
		Subject   string `json:"hs_communication_subject"`
		Timestamp string `json:"hs_timestamp"`
	} `json:"properties"`
}

// ListDeals fetches one page of deals with the properties the mapper needs.
func (c *Client) ListDeals(ctx context.Context) ([]Deal, error) {
	params := url.Values{}
	params.Set("properties", strings.Join(dealProperties, ","))
	params.Set("limit", fmt.Sprintf("%d", c.pageLimit))

	var response struct {
		Results []Deal `json:"results"`
	}
	if err := c.get(ctx, "/crm/v3/objects/deals?"+params.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return response.Results, nil
}

// ListCommunications fetches the communications associated with a deal: a v4
// associations lookup for the IDs, then a v3 batch read for the content.
func (c *Client) ListCommunications(ctx context.Context, dealID string) ([]Communication, error) {
	var associations struct {
		Results []struct {
			ToObjectID json.Number `json:"toObjectId"`
		} `json:"results"`
	}
	path := fmt.Sprintf("/crm/v4/objects/deal/%s/associations/communications", url.PathEscape(dealID))
	if err := c.get(ctx, path, &associations); err != nil {
		return nil, fmt.Errorf("failed to list communication associations: %w", err)
	}

	if len(associations.Results) == 0 {
		return nil, nil
	}

	inputs := make([]map[string]string, 0, len(associations.Results))
	for _, r := range associations.Results {
		inputs = append(inputs, map[string]string{"id": r.ToObjectID.String()})
	}

	requestBody := map[string]any{
		"properties": []string{"hs_communication_body", "hs_communication_subject", "hs_timestamp"},
		"inputs":     inputs,
	}

	var batch struct {
		Results []Communication `json:"results"`
	}
	if err := c.post(ctx, "/crm/v3/objects/communications/batch/read", requestBody, &batch); err != nil {
		return nil, fmt.Errorf("failed to batch read communications: %w", err)
	}
	return batch.Results, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(jsonBody)))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrSourceConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return common.ErrSourceRateLimit
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrDealNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return &common.RetryableError{
			Err:       fmt.Errorf("hubspot API error (status %d): %s", resp.StatusCode, string(body)),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("hubspot API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
