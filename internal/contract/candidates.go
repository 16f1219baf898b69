package contract

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// CandidateCatalog owns the authoritative candidate list. Ids are dense,
// starting at 1, assigned only on successful creation and never reused.
type CandidateCatalog struct {
	access     *AccessRegistry
	events     *EventLog
	candidates []*Candidate
}

func NewCandidateCatalog(access *AccessRegistry, events *EventLog) *CandidateCatalog {
	return &CandidateCatalog{access: access, events: events}
}

// AddCandidate creates a candidate with the next sequential id.
func (c *CandidateCatalog) AddCandidate(name, description string, caller common.Address, now time.Time) (Candidate, error) {
	if !c.access.HasRole(RoleElectionCreator, caller) {
		return Candidate{}, ErrCallerIsNotCreator
	}
	if name == "" || description == "" ||
		len(name) > MaxNameLength || len(description) > MaxDescriptionLength {
		return Candidate{}, ErrInvalidCandidateData
	}
	cand := &Candidate{
		ID:          uint64(len(c.candidates)) + 1,
		Name:        name,
		Description: description,
		AddedBy:     caller,
		AddedAt:     now,
	}
	c.candidates = append(c.candidates, cand)
	c.events.append(Event{
		Type:        EventCandidateAdded,
		Actor:       caller,
		CandidateID: cand.ID,
		Description: description,
		Details:     name,
		Timestamp:   now,
	})
	return *cand, nil
}

// GetCandidate returns a snapshot of the candidate with the given id.
func (c *CandidateCatalog) GetCandidate(id uint64) (Candidate, error) {
	if id == 0 || id > uint64(len(c.candidates)) {
		return Candidate{}, ErrCandidateNotFound
	}
	return *c.candidates[id-1], nil
}

// GetAllCandidates returns the full catalog snapshot, id ascending.
func (c *CandidateCatalog) GetAllCandidates() []Candidate {
	out := make([]Candidate, 0, len(c.candidates))
	for _, cand := range c.candidates {
		out = append(out, *cand)
	}
	return out
}

// Count returns the number of candidates ever created.
func (c *CandidateCatalog) Count() int {
	return len(c.candidates)
}

// exists reports whether id resolves to a created candidate.
func (c *CandidateCatalog) exists(id uint64) bool {
	return id >= 1 && id <= uint64(len(c.candidates))
}

// incrementVote bumps the candidate's global tally. Called only by the vote
// commit path after all checks pass; the id is known valid at that point.
func (c *CandidateCatalog) incrementVote(id uint64) {
	c.candidates[id-1].VoteCount++
}
