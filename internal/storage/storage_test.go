package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	db, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestStorage(t)
	require.NoError(t, db.Migrate(context.Background()))

	version, err := db.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestDismissAlert(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()
	when := time.Date(2024, 2, 21, 10, 0, 0, 0, time.UTC)

	require.NoError(t, db.DismissAlert(ctx, "p1", "milestone-overdue-p1", when))
	require.NoError(t, db.DismissAlert(ctx, "p1", "stalled-p1", when.Add(time.Minute)))
	require.NoError(t, db.DismissAlert(ctx, "p2", "client-blocker-p2", when))

	ids, err := db.GetDismissedAlerts(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"milestone-overdue-p1", "stalled-p1"}, ids)

	ids, err = db.GetDismissedAlerts(ctx, "p3")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDismissAlertIsUpsert(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()
	when := time.Date(2024, 2, 21, 10, 0, 0, 0, time.UTC)

	require.NoError(t, db.DismissAlert(ctx, "p1", "stalled-p1", when))
	require.NoError(t, db.DismissAlert(ctx, "p1", "stalled-p1", when.Add(time.Hour)))

	ids, err := db.GetDismissedAlerts(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"stalled-p1"}, ids)
}

func TestDismissAlertRecordsActivity(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()
	when := time.Date(2024, 2, 21, 10, 0, 0, 0, time.UTC)

	require.NoError(t, db.DismissAlert(ctx, "p1", "milestone-overdue-p1", when))

	entries, err := db.GetActivityLog(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActivityAlert, entries[0].Type)
	assert.Contains(t, entries[0].Description, "milestone-overdue-p1")
	assert.Equal(t, "Manager", entries[0].User)
}

func TestDismissAlertValidation(t *testing.T) {
	db := newTestStorage(t)
	err := db.DismissAlert(context.Background(), "", "a1", time.Now())
	require.Error(t, err)

	err = db.DismissAlert(context.Background(), "p1", "", time.Now())
	require.Error(t, err)
}

func TestActivityLogOrdering(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.SaveActivity(ctx, "p1", model.ActivityEntry{
			Date:        base.AddDate(0, 0, i),
			Type:        model.ActivityNote,
			Description: "note",
			User:        "Taro Yamada",
		}))
	}

	entries, err := db.GetActivityLog(ctx, "p1", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, base.AddDate(0, 0, 4), entries[0].Date.UTC())
	assert.Equal(t, base.AddDate(0, 0, 2), entries[2].Date.UTC())
}

func TestSaveActivityGeneratesID(t *testing.T) {
	db := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, db.SaveActivity(ctx, "p1", model.ActivityEntry{
		Date:        time.Now(),
		Type:        model.ActivityEmail,
		Description: "Received email",
		User:        "Client",
	}))

	entries, err := db.GetActivityLog(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
}
