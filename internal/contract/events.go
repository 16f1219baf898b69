package contract

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// EventType identifies a committed mutation fact.
type EventType string

const (
	EventVoterRegistered       EventType = "voter_registered"
	EventRoleGranted           EventType = "role_granted"
	EventRoleRevoked           EventType = "role_revoked"
	EventCandidateAdded        EventType = "candidate_added"
	EventElectionCreated       EventType = "election_created"
	EventElectionStatusChanged EventType = "election_status_changed"
	EventElectionEnded         EventType = "election_ended"
	EventVoteCast              EventType = "vote_cast"
	EventSystemPaused          EventType = "system_paused"
	EventSystemUnpaused        EventType = "system_unpaused"
)

// Event is one immutable fact appended after a committed mutation. Fields not
// meaningful for a given type are left at their zero value.
type Event struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	Actor       common.Address `json:"actor"`
	Principal   common.Address `json:"principal,omitempty"`
	Role        string         `json:"role,omitempty"`
	ElectionID  uint64         `json:"election_id,omitempty"`
	CandidateID uint64         `json:"candidate_id,omitempty"`
	Description string         `json:"description,omitempty"`
	StartTime   *time.Time     `json:"start_time,omitempty"`
	EndTime     *time.Time     `json:"end_time,omitempty"`
	TotalVotes  uint64         `json:"total_votes,omitempty"`
	Active      bool           `json:"active,omitempty"`
	Details     string         `json:"details,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// EventLog is the append-only fact stream. Subscribers receive every fact
// appended after they subscribe; a slow subscriber drops facts rather than
// blocking the commit path.
type EventLog struct {
	events []Event
	subs   map[int]chan Event
	nextID int
}

func NewEventLog() *EventLog {
	return &EventLog{subs: make(map[int]chan Event)}
}

// append assigns the event id and fans the fact out. Callers hold the system
// lock, so the log itself needs no synchronization.
func (l *EventLog) append(e Event) {
	e.ID = uuid.NewString()
	l.events = append(l.events, e)
	for _, ch := range l.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Events returns a copy of the full fact log in append order.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of committed facts.
func (l *EventLog) Len() int {
	return len(l.events)
}

// subscribe registers a buffered fact channel and returns it with a cancel
// function.
func (l *EventLog) subscribe(buffer int) (<-chan Event, func()) {
	id := l.nextID
	l.nextID++
	ch := make(chan Event, buffer)
	l.subs[id] = ch
	return ch, func() {
		if _, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(ch)
		}
	}
}
