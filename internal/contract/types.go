package contract

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Role is a named capability grant. A principal may hold any combination of
// roles; holding one never implies another.
type Role uint8

const (
	RoleAdministrator Role = iota
	RoleElectionCreator
	RoleVoter
)

var roleNames = map[Role]string{
	RoleAdministrator:   "administrator",
	RoleElectionCreator: "election_creator",
	RoleVoter:           "voter",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRole resolves a role name to its Role value.
func ParseRole(name string) (Role, bool) {
	for role, n := range roleNames {
		if n == name {
			return role, true
		}
	}
	return 0, false
}

// VoterRecord is the permanent registration record for a principal. Records
// are never deleted; revoking the voter role leaves the record in place for
// audit.
type VoterRecord struct {
	Principal    common.Address `json:"principal"`
	IsRegistered bool           `json:"is_registered"`
	RegisteredAt time.Time      `json:"registered_at"`
}

// Candidate is immutable once created except for VoteCount, which only the
// vote commit path increments.
type Candidate struct {
	ID          uint64         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	VoteCount   uint64         `json:"vote_count"`
	AddedBy     common.Address `json:"added_by"`
	AddedAt     time.Time      `json:"added_at"`
}

// ElectionState is derived from the stored active flag and the voting window;
// it is never stored. Open is the only state in which ballots are accepted.
type ElectionState string

const (
	StateScheduled ElectionState = "scheduled"
	StateOpen      ElectionState = "open"
	StateClosed    ElectionState = "closed"
)

// Election is a materialized snapshot of one election's public state. Ballot
// and tally maps stay inside the ledger; snapshots carry derived aggregates
// only.
type Election struct {
	ID           uint64         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	IsActive     bool           `json:"is_active"`
	CandidateIDs []uint64       `json:"candidate_ids"`
	TotalVotes   uint64         `json:"total_votes"`
	Creator      common.Address `json:"creator"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ElectionResults carries per-candidate tallies in roster order as parallel
// arrays.
type ElectionResults struct {
	ElectionID   uint64   `json:"election_id"`
	CandidateIDs []uint64 `json:"candidate_ids"`
	VoteCounts   []uint64 `json:"vote_counts"`
	TotalVotes   uint64   `json:"total_votes"`
}

// Field length bounds. The source left these unchecked; they are capped here
// so snapshots and the audit store stay bounded.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
	MaxBatchSize         = 100
)

var zeroAddress common.Address

// validPrincipal rejects the zero address, which no caller can legitimately
// hold.
func validPrincipal(p common.Address) bool {
	return p != zeroAddress
}
