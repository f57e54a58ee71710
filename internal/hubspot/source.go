package hubspot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/client-pulse/internal/common"
	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/Veraticus/client-pulse/internal/service"
)

// ProgressFunc reports per-deal fetch progress for CLI display.
type ProgressFunc func(done, total int)

// Source adapts the HubSpot client to the ProjectSource contract, producing
// fresh project snapshots each cycle.
type Source struct {
	client   *Client
	now      func() time.Time
	progress ProgressFunc
}

// NewSource creates a project source backed by the HubSpot API.
func NewSource(client *Client, opts ...SourceOption) *Source {
	s := &Source{
		client: client,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithProgress registers a progress callback invoked once per fetched deal.
func WithProgress(fn ProgressFunc) SourceOption {
	return func(s *Source) { s.progress = fn }
}

// WithNow overrides the clock used to normalize missing dates.
func WithNow(now func() time.Time) SourceOption {
	return func(s *Source) { s.now = now }
}

// GetProjects fetches the current deal list and each deal's communications,
// mapped into project snapshots. Transient API failures are retried;
// a deal whose communications cannot be fetched still yields a project,
// falling back to its description as the only communication.
func (s *Source) GetProjects(ctx context.Context) ([]model.Project, error) {
	var deals []Deal
	err := common.WithRetry(ctx, func() error {
		var listErr error
		deals, listErr = s.client.ListDeals(ctx)
		return listErr
	}, service.RetryOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deals: %w", err)
	}

	now := s.now()
	projects := make([]model.Project, 0, len(deals))
	for i, deal := range deals {
		var comms []Communication
		err := common.WithRetry(ctx, func() error {
			var commErr error
			comms, commErr = s.client.ListCommunications(ctx, deal.ID)
			return commErr
		}, service.RetryOptions{})
		if err != nil {
			slog.Warn("Failed to fetch communications for deal",
				"deal_id", deal.ID,
				"error", err)
			comms = nil
		}

		projects = append(projects, mapDeal(deal, comms, now))

		if s.progress != nil {
			s.progress(i+1, len(deals))
		}
	}

	slog.Info("Fetched project snapshot", "projects", len(projects))
	return projects, nil
}
