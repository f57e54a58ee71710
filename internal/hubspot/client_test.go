package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Veraticus/client-pulse/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-token")
	require.NoError(t, err)
	client.baseURL = srv.URL
	client.httpClient = srv.Client()
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("")
	require.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestListDeals(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v3/objects/deals", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Query().Get("properties"), "dealname")
		assert.Contains(t, r.URL.Query().Get("properties"), "closedate")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"id": "9001",
					"properties": map[string]string{
						"dealname":           "Acme Corp Onboarding",
						"closedate":          "2024-03-01T00:00:00Z",
						"hubspot_owner_id":   "42",
						"notes_last_updated": "2024-02-25T12:00:00Z",
						"description":        "Thanks for the kickoff, great start!",
					},
				},
			},
		})
	}))

	deals, err := client.ListDeals(context.Background())
	require.NoError(t, err)

	require.Len(t, deals, 1)
	assert.Equal(t, "9001", deals[0].ID)
	assert.Equal(t, "Acme Corp Onboarding", deals[0].Properties.DealName)
	assert.Equal(t, "42", deals[0].Properties.OwnerID)
}

func TestListCommunications(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/crm/v4/objects/deal/9001/associations/communications", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"toObjectId": 101},
				{"toObjectId": 102},
			},
		})
	})
	mux.HandleFunc("/crm/v3/objects/communications/batch/read", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Properties []string            `json:"properties"`
			Inputs     []map[string]string `json:"inputs"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Properties, "hs_communication_body")
		assert.Equal(t, []map[string]string{{"id": "101"}, {"id": "102"}}, body.Inputs)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"id": "101",
					"properties": map[string]string{
						"hs_communication_body":    "<p>We are struggling with the keys.</p>",
						"hs_communication_subject": "API Keys delay",
						"hs_timestamp":             "2024-02-19T10:00:00Z",
					},
				},
				{
					"id": "102",
					"properties": map[string]string{
						"hs_communication_body":    "Kickoff went well.",
						"hs_communication_subject": "Kickoff",
						"hs_timestamp":             "2024-02-10T09:00:00Z",
					},
				},
			},
		})
	})

	client := testClient(t, mux)

	comms, err := client.ListCommunications(context.Background(), "9001")
	require.NoError(t, err)

	require.Len(t, comms, 2)
	assert.Equal(t, "API Keys delay", comms[0].Properties.Subject)
}

func TestListCommunicationsNoAssociations(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Fatal("batch read should not be called with no associations")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))

	comms, err := client.ListCommunications(context.Background(), "9001")
	require.NoError(t, err)
	assert.Empty(t, comms)
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		status  int
		retry   bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: common.ErrSourceRateLimit},
		{name: "not found", status: http.StatusNotFound, wantErr: common.ErrDealNotFound},
		{name: "server error is retryable", status: http.StatusBadGateway, retry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.ListDeals(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.retry {
				assert.True(t, common.IsRetryable(err))
			}
		})
	}
}
