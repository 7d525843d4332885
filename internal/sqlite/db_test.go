package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"clients",
		"channels",
		"consultants",
		"projects",
		"project_assignments",
		"demands",
		"time_entries",
		"approvals",
		"users",
		"api_keys",
		"audit_log",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestStatusConstraints verifies the enum CHECK constraints
func TestStatusConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, name, status) VALUES (?, ?, ?)`,
		"p1", "Test Project", "in-progress")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (id, name, status) VALUES (?, ?, ?)`,
		"p2", "Bad Project", "archived")
	require.Error(t, err, "should fail with unknown status")

	_, err = db.ExecContext(ctx,
		`INSERT INTO channels (id, name, type, timesheet_day, invoice_day, payment_day)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"ch1", "Acme Partner", "partner", 25, 1, 10)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO channels (id, name, type, timesheet_day, invoice_day, payment_day)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"ch2", "Bad Channel", "partner", 32, 1, 10)
	require.Error(t, err, "should fail with cycle day out of range")
}

// TestCascadeDeletes verifies that deleting a project removes its
// assignments and demands, and deleting a demand removes its entries
func TestCascadeDeletes(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	seedConsultant(t, db, "c1")
	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, name, status) VALUES (?, ?, ?)`,
		"p1", "Test Project", "planning")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO project_assignments (project_id, consultant_id, hourly_rate) VALUES (?, ?, ?)`,
		"p1", "c1", 90)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO demands (id, project_id, title, status, priority) VALUES (?, ?, ?, ?, ?)`,
		"d1", "p1", "Build it", "pending", "medium")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO time_entries (id, demand_id, consultant_id, entry_date, hours) VALUES (?, ?, ?, ?, ?)`,
		"e1", "d1", "c1", time.Now(), 4.0)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, "p1")
	require.NoError(t, err)

	for _, q := range []string{
		`SELECT COUNT(*) FROM project_assignments`,
		`SELECT COUNT(*) FROM demands`,
		`SELECT COUNT(*) FROM time_entries`,
	} {
		var count int
		require.NoError(t, db.QueryRowContext(ctx, q).Scan(&count))
		require.Equal(t, 0, count)
	}
}

func seedConsultant(t *testing.T, db *DB, id string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO consultants (id, name, email, hourly_rate, active) VALUES (?, ?, ?, ?, 1)`,
		id, "Consultant "+id, id+"@example.com", 80.0)
	require.NoError(t, err)
}

func seedClient(t *testing.T, db *DB, id string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO clients (id, company, active) VALUES (?, ?, 1)`,
		id, "Company "+id)
	require.NoError(t, err)
}

func seedChannel(t *testing.T, db *DB, id string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO channels (id, name, type, hourly_rate, timesheet_day, invoice_day, payment_day)
		 VALUES (?, ?, 'direct', 100, 25, 1, 10)`,
		id, "Channel "+id)
	require.NoError(t, err)
}
