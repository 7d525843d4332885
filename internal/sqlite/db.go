package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Clients
CREATE TABLE clients (
    id TEXT PRIMARY KEY,
    company TEXT NOT NULL,
    contact_name TEXT,
    email TEXT,
    phone TEXT,
    active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Sales channels
CREATE TABLE channels (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL CHECK(type IN ('direct', 'partner', 'referral', 'marketing')),
    hourly_rate REAL NOT NULL DEFAULT 0,
    timesheet_day INTEGER NOT NULL CHECK(timesheet_day BETWEEN 1 AND 31),
    invoice_day INTEGER NOT NULL CHECK(invoice_day BETWEEN 1 AND 31),
    payment_day INTEGER NOT NULL CHECK(payment_day BETWEEN 1 AND 31),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Consultants
CREATE TABLE consultants (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    hourly_rate REAL NOT NULL DEFAULT 0,
    active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Projects
CREATE TABLE projects (
    id TEXT PRIMARY KEY,
    client_id TEXT,
    channel_id TEXT,
    name TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL CHECK(status IN ('planning', 'in-progress', 'paused', 'awaiting-client', 'completed', 'cancelled')),
    channel_rate REAL NOT NULL DEFAULT 0,
    consultant_rate REAL NOT NULL DEFAULT 0,
    estimated_hours REAL NOT NULL DEFAULT 0,
    worked_hours REAL NOT NULL DEFAULT 0,
    start_date TIMESTAMP,
    end_date TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (client_id) REFERENCES clients(id),
    FOREIGN KEY (channel_id) REFERENCES channels(id)
);
CREATE INDEX idx_project_status ON projects(status);
CREATE INDEX idx_project_client ON projects(client_id);
CREATE INDEX idx_project_channel ON projects(channel_id);

-- Project consultant assignments (many-to-many with per-assignment rate)
CREATE TABLE project_assignments (
    project_id TEXT NOT NULL,
    consultant_id TEXT NOT NULL,
    hourly_rate REAL NOT NULL DEFAULT 0,
    hours_logged REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (project_id, consultant_id),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
    FOREIGN KEY (consultant_id) REFERENCES consultants(id)
);

-- Demands
CREATE TABLE demands (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL CHECK(status IN ('pending', 'in-progress', 'awaiting-feedback', 'in-review', 'completed', 'cancelled')),
    priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high', 'urgent')),
    estimated_hours REAL NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX idx_demand_project ON demands(project_id);
CREATE INDEX idx_demand_status ON demands(status);

-- Time entries
CREATE TABLE time_entries (
    id TEXT PRIMARY KEY,
    demand_id TEXT NOT NULL,
    consultant_id TEXT NOT NULL,
    entry_date TIMESTAMP NOT NULL,
    hours REAL NOT NULL,
    description TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (demand_id) REFERENCES demands(id) ON DELETE CASCADE,
    FOREIGN KEY (consultant_id) REFERENCES consultants(id)
);
CREATE INDEX idx_entry_demand ON time_entries(demand_id);
CREATE INDEX idx_entry_consultant ON time_entries(consultant_id);
CREATE INDEX idx_entry_date ON time_entries(entry_date);

-- Approvals
CREATE TABLE approvals (
    id TEXT PRIMARY KEY,
    time_entry_id TEXT NOT NULL,
    consultant_id TEXT NOT NULL,
    hours REAL NOT NULL,
    amount REAL NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('pending', 'approved', 'rejected', 'paid')),
    reason TEXT,
    reviewed_by TEXT,
    reviewed_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (time_entry_id) REFERENCES time_entries(id)
);
CREATE INDEX idx_approval_status ON approvals(status);
CREATE INDEX idx_approval_consultant ON approvals(consultant_id);

-- Users
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('view', 'consultant', 'admin', 'master-admin')),
    active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- API keys for authentication
CREATE TABLE api_keys (
    key_hash TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

-- Audit log
CREATE TABLE audit_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entity_id TEXT,
    actor_id TEXT,
    event_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    details TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_audit_entity ON audit_log(entity_id);
CREATE INDEX idx_audit_created_at ON audit_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
