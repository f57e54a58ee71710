package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/google/uuid"
)

// DismissAlert records a user's dismissal of an alert and appends one
// activity-log entry, atomically. Dismissing the same alert again is a no-op
// for the dismissal itself but still records the activity.
func (s *SQLiteStorage) DismissAlert(ctx context.Context, projectID, alertID string, dismissedAt time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if projectID == "" || alertID == "" {
		return fmt.Errorf("projectID and alertID cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dismissed_alerts (project_id, alert_id, dismissed_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (project_id, alert_id) DO UPDATE SET dismissed_at = excluded.dismissed_at`,
		projectID, alertID, dismissedAt); err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}

	entry := model.ActivityEntry{
		ID:          uuid.NewString(),
		Date:        dismissedAt,
		Type:        model.ActivityAlert,
		Description: fmt.Sprintf("Dismissed alert %s", alertID),
		User:        "Manager",
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO activity_log (id, project_id, date, type, description, user)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, projectID, entry.Date, string(entry.Type), entry.Description, entry.User); err != nil {
		return fmt.Errorf("failed to record dismissal activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dismissal: %w", err)
	}
	return nil
}

// GetDismissedAlerts returns the set of alert IDs the user has suppressed for
// a project, oldest dismissal first.
func (s *SQLiteStorage) GetDismissedAlerts(ctx context.Context, projectID string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT alert_id FROM dismissed_alerts WHERE project_id = ? ORDER BY dismissed_at, alert_id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dismissals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan dismissal: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dismissals: %w", err)
	}
	return ids, nil
}
