package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/google/uuid"
)

// SaveActivity appends one entry to a project's activity log. A missing entry
// ID is generated.
func (s *SQLiteStorage) SaveActivity(ctx context.Context, projectID string, entry model.ActivityEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if projectID == "" {
		return fmt.Errorf("projectID cannot be empty")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO activity_log (id, project_id, date, type, description, user)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, projectID, entry.Date, string(entry.Type), entry.Description, entry.User); err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

// GetActivityLog returns a project's activity entries newest-first, capped at
// limit when limit is positive.
func (s *SQLiteStorage) GetActivityLog(ctx context.Context, projectID string, limit int) ([]model.ActivityEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, date, type, description, user
		FROM activity_log WHERE project_id = ? ORDER BY date DESC, id`
	args := []any{projectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.ActivityEntry
	for rows.Next() {
		var e model.ActivityEntry
		var entryType string
		if err := rows.Scan(&e.ID, &e.Date, &entryType, &e.Description, &e.User); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		e.Type = model.ActivityType(entryType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity log: %w", err)
	}
	return entries, nil
}
