package contract

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// VotingEngine performs the single atomic transition that records a ballot.
// It is the only component that mutates ballot state and vote counters, and it
// does so only through the ledger's and catalog's commit operations.
type VotingEngine struct {
	access  *AccessRegistry
	catalog *CandidateCatalog
	ledger  *ElectionLedger
	events  *EventLog
}

func NewVotingEngine(access *AccessRegistry, catalog *CandidateCatalog, ledger *ElectionLedger, events *EventLog) *VotingEngine {
	return &VotingEngine{access: access, catalog: catalog, ledger: ledger, events: events}
}

// CastVote validates the caller, the election window and the ballot status,
// then commits the vote as a single unit. Every check precedes every write; a
// failure at any step leaves all state untouched.
func (v *VotingEngine) CastVote(electionID, candidateID uint64, caller common.Address, now time.Time) error {
	if !v.access.HasRole(RoleVoter, caller) {
		return ErrCallerIsNotVoter
	}
	rec, err := v.ledger.record(electionID)
	if err != nil {
		return err
	}
	if !rec.isActive {
		return ErrElectionNotActive
	}
	if now.Before(rec.startTime) {
		return ErrElectionNotStarted
	}
	if now.After(rec.endTime) {
		return ErrElectionEnded
	}
	if !v.catalog.exists(candidateID) {
		return ErrCandidateNotFound
	}
	onRoster := false
	for _, id := range rec.roster {
		if id == candidateID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		return ErrCandidateNotInElection
	}
	if rec.ballots[caller] {
		return ErrAlreadyVoted
	}

	// Commit. No failure paths below this line.
	rec.ballots[caller] = true
	rec.tally[candidateID]++
	rec.totalVotes++
	v.catalog.incrementVote(candidateID)
	v.events.append(Event{
		Type:        EventVoteCast,
		Actor:       caller,
		ElectionID:  electionID,
		CandidateID: candidateID,
		TotalVotes:  rec.totalVotes,
		Timestamp:   now,
	})
	return nil
}
