package repositories

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
	"github.com/aryanpatil97/Blockchain-Voting/internal/database"
)

type EventRepository struct {
	db     *sql.DB
	dbType string
}

func NewEventRepository(db *sql.DB, dbType string) *EventRepository {
	return &EventRepository{db: db, dbType: dbType}
}

// rebind rewrites ? placeholders to the $N form postgres requires. Queries
// are written with ? and rebound once, so both backends share one SQL body.
func (r *EventRepository) rebind(query string) string {
	if r.dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// InsertEvent persists one committed ledger fact.
func (r *EventRepository) InsertEvent(ev contract.Event) error {
	query := `
        INSERT INTO audit_events (event_id, event_type, actor, principal, role,
            election_id, candidate_id, description, start_time, end_time,
            total_votes, active, details, occurred_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(r.rebind(query),
		ev.ID, string(ev.Type), ev.Actor.Hex(), ev.Principal.Hex(), ev.Role,
		int64(ev.ElectionID), int64(ev.CandidateID), ev.Description,
		ev.StartTime, ev.EndTime, int64(ev.TotalVotes),
		ev.Active, ev.Details, ev.Timestamp,
	)
	return err
}

// GetEvents retrieves persisted facts with pagination and filtering.
func (r *EventRepository) GetEvents(limit, offset int, eventType, actor string, electionID int64, startTime, endTime *time.Time) ([]database.AuditEvent, error) {
	query := `
        SELECT id, event_id, event_type, actor, principal, role,
               election_id, candidate_id, description, start_time, end_time,
               total_votes, active, details, occurred_at, created_at
        FROM audit_events
        WHERE 1=1
    `
	args := []interface{}{}

	if eventType != "" {
		query += " AND event_type = ?"
		args = append(args, eventType)
	}

	if actor != "" {
		query += " AND actor = ?"
		args = append(args, actor)
	}

	if electionID > 0 {
		query += " AND election_id = ?"
		args = append(args, electionID)
	}

	if startTime != nil {
		query += " AND occurred_at >= ?"
		args = append(args, startTime)
	}

	if endTime != nil {
		query += " AND occurred_at <= ?"
		args = append(args, endTime)
	}

	query += " ORDER BY occurred_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(r.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetEventsByElection gets persisted facts for a specific election.
func (r *EventRepository) GetEventsByElection(electionID int64, limit, offset int) ([]database.AuditEvent, error) {
	query := `
        SELECT id, event_id, event_type, actor, principal, role,
               election_id, candidate_id, description, start_time, end_time,
               total_votes, active, details, occurred_at, created_at
        FROM audit_events
        WHERE election_id = ?
        ORDER BY occurred_at DESC
        LIMIT ? OFFSET ?
    `

	rows, err := r.db.Query(r.rebind(query), electionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CountEvents returns the number of persisted facts, optionally filtered by
// type.
func (r *EventRepository) CountEvents(eventType string) (int64, error) {
	var count int64
	var err error
	if eventType != "" {
		err = r.db.QueryRow(r.rebind("SELECT COUNT(*) FROM audit_events WHERE event_type = ?"), eventType).Scan(&count)
	} else {
		err = r.db.QueryRow("SELECT COUNT(*) FROM audit_events").Scan(&count)
	}
	return count, err
}

func scanEvents(rows *sql.Rows) ([]database.AuditEvent, error) {
	var events []database.AuditEvent
	for rows.Next() {
		var ev database.AuditEvent
		err := rows.Scan(&ev.ID, &ev.EventID, &ev.EventType, &ev.Actor, &ev.Principal,
			&ev.Role, &ev.ElectionID, &ev.CandidateID, &ev.Description,
			&ev.StartTime, &ev.EndTime, &ev.TotalVotes, &ev.Active,
			&ev.Details, &ev.OccurredAt, &ev.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
