package contract

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// electionRecord is the stored form of one election. The ballot set and
// per-candidate tally never leave the ledger; reads get snapshots.
type electionRecord struct {
	id          uint64
	title       string
	description string
	startTime   time.Time
	endTime     time.Time
	isActive    bool
	roster      []uint64
	totalVotes  uint64
	creator     common.Address
	createdAt   time.Time
	ballots     map[common.Address]bool
	tally       map[uint64]uint64
}

func (e *electionRecord) snapshot() Election {
	roster := make([]uint64, len(e.roster))
	copy(roster, e.roster)
	return Election{
		ID:           e.id,
		Title:        e.title,
		Description:  e.description,
		StartTime:    e.startTime,
		EndTime:      e.endTime,
		IsActive:     e.isActive,
		CandidateIDs: roster,
		TotalVotes:   e.totalVotes,
		Creator:      e.creator,
		CreatedAt:    e.createdAt,
	}
}

// stateAt derives the lifecycle state. The voting window is inclusive at both
// boundaries.
func (e *electionRecord) stateAt(now time.Time) ElectionState {
	if !e.isActive {
		return StateClosed
	}
	if now.Before(e.startTime) {
		return StateScheduled
	}
	if now.After(e.endTime) {
		return StateClosed
	}
	return StateOpen
}

// ElectionLedger owns election records, their rosters, ballot sets and vote
// tallies. It depends on the access registry for authorization and on the
// candidate catalog to resolve rosters.
type ElectionLedger struct {
	access    *AccessRegistry
	catalog   *CandidateCatalog
	events    *EventLog
	elections []*electionRecord
}

func NewElectionLedger(access *AccessRegistry, catalog *CandidateCatalog, events *EventLog) *ElectionLedger {
	return &ElectionLedger{access: access, catalog: catalog, events: events}
}

// CreateElection creates an election with a fixed roster and the next
// sequential id. The roster must be non-empty, duplicate-free and fully
// resolvable; the window must start in the future and end after it starts.
func (l *ElectionLedger) CreateElection(title, description string, startTime, endTime time.Time, candidateIDs []uint64, caller common.Address, now time.Time) (Election, error) {
	if !l.access.HasRole(RoleElectionCreator, caller) {
		return Election{}, ErrCallerIsNotCreator
	}
	if title == "" || len(title) > MaxNameLength || len(description) > MaxDescriptionLength {
		return Election{}, ErrInvalidElectionData
	}
	if !startTime.Before(endTime) {
		return Election{}, ErrInvalidTimeRange
	}
	if !startTime.After(now) {
		return Election{}, ErrInvalidTimeRange
	}
	if len(candidateIDs) == 0 {
		return Election{}, ErrInvalidElectionData
	}
	seen := make(map[uint64]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		if !l.catalog.exists(id) {
			return Election{}, ErrCandidateNotFound
		}
		if seen[id] {
			return Election{}, ErrDuplicateCandidate
		}
		seen[id] = true
	}

	roster := make([]uint64, len(candidateIDs))
	copy(roster, candidateIDs)
	tally := make(map[uint64]uint64, len(roster))
	for _, id := range roster {
		tally[id] = 0
	}
	rec := &electionRecord{
		id:          uint64(len(l.elections)) + 1,
		title:       title,
		description: description,
		startTime:   startTime,
		endTime:     endTime,
		isActive:    true,
		roster:      roster,
		creator:     caller,
		createdAt:   now,
		ballots:     make(map[common.Address]bool),
		tally:       tally,
	}
	l.elections = append(l.elections, rec)
	start, end := rec.startTime, rec.endTime
	l.events.append(Event{
		Type:       EventElectionCreated,
		Actor:      caller,
		ElectionID: rec.id,
		StartTime:  &start,
		EndTime:    &end,
		Details:    title,
		Timestamp:  now,
	})
	return rec.snapshot(), nil
}

// EndElection deactivates an election permanently. Accepted from election
// creators and administrators; ending an already inactive election is an
// error, unlike ToggleElectionStatus.
func (l *ElectionLedger) EndElection(id uint64, caller common.Address, now time.Time) error {
	if !l.access.HasRole(RoleElectionCreator, caller) && !l.access.HasRole(RoleAdministrator, caller) {
		return ErrCallerIsNotAdminOrCreator
	}
	rec, err := l.record(id)
	if err != nil {
		return err
	}
	if !rec.isActive {
		return ErrElectionAlreadyEnded
	}
	rec.isActive = false
	l.events.append(Event{
		Type:       EventElectionEnded,
		Actor:      caller,
		ElectionID: rec.id,
		TotalVotes: rec.totalVotes,
		Timestamp:  now,
	})
	return nil
}

// ToggleElectionStatus flips the active flag either direction without checking
// prior state. Administrative override; EndElection is the terminal path.
func (l *ElectionLedger) ToggleElectionStatus(id uint64, caller common.Address, now time.Time) (bool, error) {
	if !l.access.HasRole(RoleElectionCreator, caller) && !l.access.HasRole(RoleAdministrator, caller) {
		return false, ErrCallerIsNotAdminOrCreator
	}
	rec, err := l.record(id)
	if err != nil {
		return false, err
	}
	rec.isActive = !rec.isActive
	l.events.append(Event{
		Type:       EventElectionStatusChanged,
		Actor:      caller,
		ElectionID: rec.id,
		Active:     rec.isActive,
		Timestamp:  now,
	})
	return rec.isActive, nil
}

// GetElection returns a snapshot of the election with the given id.
func (l *ElectionLedger) GetElection(id uint64) (Election, error) {
	rec, err := l.record(id)
	if err != nil {
		return Election{}, err
	}
	return rec.snapshot(), nil
}

// GetAllElections returns snapshots of every election, id ascending.
func (l *ElectionLedger) GetAllElections() []Election {
	out := make([]Election, 0, len(l.elections))
	for _, rec := range l.elections {
		out = append(out, rec.snapshot())
	}
	return out
}

// GetElectionResults returns per-candidate tallies in roster order.
func (l *ElectionLedger) GetElectionResults(id uint64) (ElectionResults, error) {
	rec, err := l.record(id)
	if err != nil {
		return ElectionResults{}, err
	}
	results := ElectionResults{
		ElectionID:   rec.id,
		CandidateIDs: make([]uint64, len(rec.roster)),
		VoteCounts:   make([]uint64, len(rec.roster)),
		TotalVotes:   rec.totalVotes,
	}
	for i, cid := range rec.roster {
		results.CandidateIDs[i] = cid
		results.VoteCounts[i] = rec.tally[cid]
	}
	return results, nil
}

// StateAt derives the lifecycle state of an election at the given instant.
func (l *ElectionLedger) StateAt(id uint64, now time.Time) (ElectionState, error) {
	rec, err := l.record(id)
	if err != nil {
		return "", err
	}
	return rec.stateAt(now), nil
}

// HasVoted reports whether principal has cast a ballot in the election.
func (l *ElectionLedger) HasVoted(id uint64, principal common.Address) (bool, error) {
	rec, err := l.record(id)
	if err != nil {
		return false, err
	}
	return rec.ballots[principal], nil
}

// Count returns the number of elections ever created.
func (l *ElectionLedger) Count() int {
	return len(l.elections)
}

func (l *ElectionLedger) record(id uint64) (*electionRecord, error) {
	if id == 0 || id > uint64(len(l.elections)) {
		return nil, ErrElectionNotFound
	}
	return l.elections[id-1], nil
}
