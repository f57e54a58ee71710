// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
)

// ProjectSource supplies fresh project snapshots from the CRM. Emails come
// back newest-first; implementations normalize malformed dates before the
// snapshot reaches the engine.
type ProjectSource interface {
	GetProjects(ctx context.Context) ([]model.Project, error)
}

// AnalysisRequest carries one project's communications to the external
// analyzer. Messages are newest-first.
type AnalysisRequest struct {
	Deadline    time.Time
	ProjectName string
	Messages    []model.Communication
}

// Analyzer is the optional external (LLM-backed) assessment of a project.
// Callers merge the result onto the project before the engine runs; analyzer
// failures fall back to the local sentiment heuristic.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (model.Analysis, error)
}

// Storage is the local persistence contract: dismissed alerts and the
// activity log. This is the only state kept across fetch cycles.
type Storage interface {
	DismissAlert(ctx context.Context, projectID, alertID string, dismissedAt time.Time) error
	GetDismissedAlerts(ctx context.Context, projectID string) ([]string, error)
	SaveActivity(ctx context.Context, projectID string, entry model.ActivityEntry) error
	GetActivityLog(ctx context.Context, projectID string, limit int) ([]model.ActivityEntry, error)
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
