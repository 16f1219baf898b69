package database

import "time"

// AuditEvent is the persisted form of one committed ledger fact. Rows are
// append-only; nothing updates or deletes them.
type AuditEvent struct {
	ID          int64      `db:"id" json:"id"`
	EventID     string     `db:"event_id" json:"event_id"`
	EventType   string     `db:"event_type" json:"event_type"`
	Actor       string     `db:"actor" json:"actor"`
	Principal   string     `db:"principal" json:"principal"`
	Role        string     `db:"role" json:"role"`
	ElectionID  int64      `db:"election_id" json:"election_id"`
	CandidateID int64      `db:"candidate_id" json:"candidate_id"`
	Description string     `db:"description" json:"description,omitempty"`
	StartTime   *time.Time `db:"start_time" json:"start_time,omitempty"`
	EndTime     *time.Time `db:"end_time" json:"end_time,omitempty"`
	TotalVotes  int64      `db:"total_votes" json:"total_votes"`
	Active      bool       `db:"active" json:"active"`
	Details     string     `db:"details" json:"details"`
	OccurredAt  time.Time  `db:"occurred_at" json:"occurred_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
