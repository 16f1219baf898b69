package contract

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Clock supplies the ambient time for an operation. Injected so the voting
// window logic stays deterministic under test.
type Clock func() time.Time

// VotingSystem is the single owned aggregate holding all ledger state. Every
// operation takes the caller principal explicitly; there are no ambient
// globals. A mutex totally orders operations (the host process is the
// sequencer), and an in-flight marker rejects reentrant invocation as a
// safety net even though normal flow can never trigger it.
type VotingSystem struct {
	mu       sync.Mutex
	clock    Clock
	paused   bool
	inFlight bool

	access  *AccessRegistry
	catalog *CandidateCatalog
	ledger  *ElectionLedger
	engine  *VotingEngine
	events  *EventLog
}

// NewVotingSystem constructs the aggregate and seats the deployer as the
// first administrator and election creator, guaranteeing the system never
// exists without an administrator.
func NewVotingSystem(deployer common.Address, clock Clock) (*VotingSystem, error) {
	if !validPrincipal(deployer) {
		return nil, ErrInvalidPrincipal
	}
	if clock == nil {
		clock = time.Now
	}
	events := NewEventLog()
	access := NewAccessRegistry(events)
	catalog := NewCandidateCatalog(access, events)
	ledger := NewElectionLedger(access, catalog, events)
	engine := NewVotingEngine(access, catalog, ledger, events)

	access.grant(RoleAdministrator, deployer)
	access.grant(RoleElectionCreator, deployer)

	return &VotingSystem{
		clock:   clock,
		access:  access,
		catalog: catalog,
		ledger:  ledger,
		engine:  engine,
		events:  events,
	}, nil
}

// transact runs one mutating operation to completion under the system lock.
// The pause gate runs before any other validation; the in-flight marker is
// checked first because nothing may observe state mid-transition.
func (s *VotingSystem) transact(fn func(now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrReentrantCall
	}
	if s.paused {
		return ErrSystemPaused
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()
	return fn(s.clock())
}

// GrantRole grants a role to a principal. Administrator only.
func (s *VotingSystem) GrantRole(role Role, principal, caller common.Address) error {
	return s.transact(func(now time.Time) error {
		return s.access.GrantRole(role, principal, caller, now)
	})
}

// RevokeRole removes a role from a principal. Administrator only.
func (s *VotingSystem) RevokeRole(role Role, principal, caller common.Address) error {
	return s.transact(func(now time.Time) error {
		return s.access.RevokeRole(role, principal, caller, now)
	})
}

// RegisterVoter registers a principal and grants the voter role.
func (s *VotingSystem) RegisterVoter(principal, caller common.Address) (VoterRecord, error) {
	var rec VoterRecord
	err := s.transact(func(now time.Time) error {
		var err error
		rec, err = s.access.RegisterVoter(principal, caller, now)
		return err
	})
	return rec, err
}

// BatchRegisterVoters registers the unregistered principals in the batch and
// returns how many were registered.
func (s *VotingSystem) BatchRegisterVoters(principals []common.Address, caller common.Address) (int, error) {
	var registered int
	err := s.transact(func(now time.Time) error {
		var err error
		registered, err = s.access.BatchRegisterVoters(principals, caller, now)
		return err
	})
	return registered, err
}

// AddCandidate creates a candidate with the next sequential id.
func (s *VotingSystem) AddCandidate(name, description string, caller common.Address) (Candidate, error) {
	var cand Candidate
	err := s.transact(func(now time.Time) error {
		var err error
		cand, err = s.catalog.AddCandidate(name, description, caller, now)
		return err
	})
	return cand, err
}

// CreateElection creates an election with a fixed candidate roster.
func (s *VotingSystem) CreateElection(title, description string, startTime, endTime time.Time, candidateIDs []uint64, caller common.Address) (Election, error) {
	var election Election
	err := s.transact(func(now time.Time) error {
		var err error
		election, err = s.ledger.CreateElection(title, description, startTime, endTime, candidateIDs, caller, now)
		return err
	})
	return election, err
}

// EndElection deactivates an election permanently.
func (s *VotingSystem) EndElection(id uint64, caller common.Address) error {
	return s.transact(func(now time.Time) error {
		return s.ledger.EndElection(id, caller, now)
	})
}

// ToggleElectionStatus flips an election's active flag and returns the new
// value.
func (s *VotingSystem) ToggleElectionStatus(id uint64, caller common.Address) (bool, error) {
	var active bool
	err := s.transact(func(now time.Time) error {
		var err error
		active, err = s.ledger.ToggleElectionStatus(id, caller, now)
		return err
	})
	return active, err
}

// CastVote records a ballot for the caller in the given election.
func (s *VotingSystem) CastVote(electionID, candidateID uint64, caller common.Address) error {
	return s.transact(func(now time.Time) error {
		return s.engine.CastVote(electionID, candidateID, caller, now)
	})
}

// Pause stops every mutating operation except Unpause. Administrator only.
func (s *VotingSystem) Pause(caller common.Address) error {
	return s.transact(func(now time.Time) error {
		if !s.access.HasRole(RoleAdministrator, caller) {
			return ErrCallerIsNotAdmin
		}
		s.paused = true
		s.events.append(Event{Type: EventSystemPaused, Actor: caller, Timestamp: now})
		return nil
	})
}

// Unpause lifts the pause gate. It is the one mutating operation that runs
// while paused; unpausing an unpaused system is a no-op success.
func (s *VotingSystem) Unpause(caller common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrReentrantCall
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()
	if !s.access.HasRole(RoleAdministrator, caller) {
		return ErrCallerIsNotAdmin
	}
	if !s.paused {
		return nil
	}
	s.paused = false
	s.events.append(Event{Type: EventSystemUnpaused, Actor: caller, Timestamp: s.clock()})
	return nil
}

// IsPaused reports whether the pause gate is set. Reads stay available while
// paused.
func (s *VotingSystem) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// HasRole reports whether principal currently holds role.
func (s *VotingSystem) HasRole(role Role, principal common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access.HasRole(role, principal)
}

// RoleMembers returns the principals currently holding role.
func (s *VotingSystem) RoleMembers(role Role) []common.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access.RoleMembers(role)
}

// IsRegisteredVoter reports whether principal has ever been registered.
func (s *VotingSystem) IsRegisteredVoter(principal common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access.IsRegisteredVoter(principal)
}

// GetVoter returns the registration record for principal.
func (s *VotingSystem) GetVoter(principal common.Address) (VoterRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access.GetVoter(principal)
}

// GetAllVoters returns registration records in registration order.
func (s *VotingSystem) GetAllVoters() []VoterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access.GetAllVoters()
}

// VoterCount returns the number of registered voters.
func (s *VotingSystem) VoterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access.VoterCount()
}

// GetCandidate returns a snapshot of one candidate.
func (s *VotingSystem) GetCandidate(id uint64) (Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.GetCandidate(id)
}

// GetAllCandidates returns the full candidate catalog, id ascending.
func (s *VotingSystem) GetAllCandidates() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.GetAllCandidates()
}

// CandidateCount returns the number of candidates ever created.
func (s *VotingSystem) CandidateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Count()
}

// GetElection returns a snapshot of one election.
func (s *VotingSystem) GetElection(id uint64) (Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.GetElection(id)
}

// GetAllElections returns snapshots of every election, id ascending.
func (s *VotingSystem) GetAllElections() []Election {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.GetAllElections()
}

// GetElectionResults returns per-candidate tallies in roster order.
func (s *VotingSystem) GetElectionResults(id uint64) (ElectionResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.GetElectionResults(id)
}

// ElectionState derives the lifecycle state of an election right now.
func (s *VotingSystem) ElectionState(id uint64) (ElectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.StateAt(id, s.clock())
}

// ElectionCount returns the number of elections ever created.
func (s *VotingSystem) ElectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Count()
}

// HasVoted reports whether principal has cast a ballot in the election.
func (s *VotingSystem) HasVoted(electionID uint64, principal common.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.HasVoted(electionID, principal)
}

// Events returns a copy of the committed fact log in append order.
func (s *VotingSystem) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Events()
}

// SubscribeEvents registers a buffered fact channel. The returned cancel
// function must be called when the subscriber is done.
func (s *VotingSystem) SubscribeEvents(buffer int) (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, cancel := s.events.subscribe(buffer)
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cancel()
	}
}
