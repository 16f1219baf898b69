package database

import (
	"database/sql"
	"fmt"
)

// RunMigrations executes database migrations for the configured backend.
func RunMigrations(db *sql.DB, dbType string) error {
	var table string
	switch dbType {
	case "postgres":
		table = createAuditEventsTablePostgres
	case "sqlite":
		table = createAuditEventsTableSQLite
	default:
		return fmt.Errorf("unsupported database type: %s", dbType)
	}

	migrations := []string{
		table,
		createAuditEventIndices,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %v", i+1, err)
		}
	}

	return nil
}

// Database schema definitions. The two variants differ only in the id and
// integer column types; everything else must stay in sync.
const createAuditEventsTableSQLite = `
CREATE TABLE IF NOT EXISTS audit_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_id VARCHAR(36) NOT NULL UNIQUE,
    event_type VARCHAR(50) NOT NULL,
    actor VARCHAR(42) NOT NULL,
    principal VARCHAR(42),
    role VARCHAR(30),
    election_id INTEGER DEFAULT 0,
    candidate_id INTEGER DEFAULT 0,
    description TEXT DEFAULT '',
    start_time TIMESTAMP,
    end_time TIMESTAMP,
    total_votes INTEGER DEFAULT 0,
    active BOOLEAN DEFAULT FALSE,
    details TEXT,
    occurred_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createAuditEventsTablePostgres = `
CREATE TABLE IF NOT EXISTS audit_events (
    id BIGSERIAL PRIMARY KEY,
    event_id VARCHAR(36) NOT NULL UNIQUE,
    event_type VARCHAR(50) NOT NULL,
    actor VARCHAR(42) NOT NULL,
    principal VARCHAR(42),
    role VARCHAR(30),
    election_id BIGINT DEFAULT 0,
    candidate_id BIGINT DEFAULT 0,
    description TEXT DEFAULT '',
    start_time TIMESTAMP,
    end_time TIMESTAMP,
    total_votes BIGINT DEFAULT 0,
    active BOOLEAN DEFAULT FALSE,
    details TEXT,
    occurred_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createAuditEventIndices = `
CREATE INDEX IF NOT EXISTS idx_audit_events_type ON audit_events (event_type);
CREATE INDEX IF NOT EXISTS idx_audit_events_actor ON audit_events (actor);
CREATE INDEX IF NOT EXISTS idx_audit_events_election ON audit_events (election_id);
CREATE INDEX IF NOT EXISTS idx_audit_events_occurred ON audit_events (occurred_at);`
