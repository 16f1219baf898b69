package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCandidates adds n candidates and returns their ids.
func seedCandidates(t *testing.T, sys *VotingSystem, n int) []uint64 {
	t.Helper()
	ids := make([]uint64, 0, n)
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin"}
	for i := 0; i < n; i++ {
		cand, err := sys.AddCandidate(names[i%len(names)], "candidate", deployer)
		require.NoError(t, err)
		ids = append(ids, cand.ID)
	}
	return ids
}

func TestCreateElection(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 2)

	start := clock.Now().Add(10 * time.Second)
	end := clock.Now().Add(time.Hour)
	created, err := sys.CreateElection("General Election", "Annual vote", start, end, ids, deployer)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, uint64(0), created.TotalVotes)
	assert.Equal(t, deployer, created.Creator)

	// Round trip: an immediate read returns the identical snapshot.
	got, err := sys.GetElection(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateElectionValidation(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 2)
	now := clock.Now()

	// start >= end
	_, err := sys.CreateElection("E", "d", now.Add(time.Hour), now.Add(time.Hour), ids, deployer)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	_, err = sys.CreateElection("E", "d", now.Add(2*time.Hour), now.Add(time.Hour), ids, deployer)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// start in the past or exactly now
	_, err = sys.CreateElection("E", "d", now, now.Add(time.Hour), ids, deployer)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	_, err = sys.CreateElection("E", "d", now.Add(-time.Minute), now.Add(time.Hour), ids, deployer)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// empty title, empty roster
	_, err = sys.CreateElection("", "d", now.Add(time.Minute), now.Add(time.Hour), ids, deployer)
	assert.ErrorIs(t, err, ErrInvalidElectionData)
	_, err = sys.CreateElection("E", "d", now.Add(time.Minute), now.Add(time.Hour), nil, deployer)
	assert.ErrorIs(t, err, ErrInvalidElectionData)

	// unresolvable roster entry
	_, err = sys.CreateElection("E", "d", now.Add(time.Minute), now.Add(time.Hour), []uint64{ids[0], 99}, deployer)
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	// duplicate roster entries are rejected at creation
	_, err = sys.CreateElection("E", "d", now.Add(time.Minute), now.Add(time.Hour), []uint64{ids[0], ids[0]}, deployer)
	assert.ErrorIs(t, err, ErrDuplicateCandidate)

	// role required
	_, err = sys.CreateElection("E", "d", now.Add(time.Minute), now.Add(time.Hour), ids, stranger)
	assert.ErrorIs(t, err, ErrCallerIsNotCreator)

	// None of the failed attempts consumed an election id.
	assert.Equal(t, 0, sys.ElectionCount())
}

func TestEndElection(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 2)

	created, err := sys.CreateElection("E", "d", clock.Now().Add(time.Minute), clock.Now().Add(time.Hour), ids, deployer)
	require.NoError(t, err)

	require.NoError(t, sys.EndElection(created.ID, deployer))
	got, err := sys.GetElection(created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// One-way: ending twice is an error.
	assert.ErrorIs(t, sys.EndElection(created.ID, deployer), ErrElectionAlreadyEnded)
	assert.ErrorIs(t, sys.EndElection(99, deployer), ErrElectionNotFound)
	assert.ErrorIs(t, sys.EndElection(created.ID, stranger), ErrCallerIsNotAdminOrCreator)
}

func TestEndElectionAcceptsAdminOrCreator(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 1)

	admin2 := voter1
	require.NoError(t, sys.GrantRole(RoleAdministrator, admin2, deployer))
	creator2 := voter2
	require.NoError(t, sys.GrantRole(RoleElectionCreator, creator2, deployer))

	first, err := sys.CreateElection("E1", "d", clock.Now().Add(time.Minute), clock.Now().Add(time.Hour), ids, deployer)
	require.NoError(t, err)
	second, err := sys.CreateElection("E2", "d", clock.Now().Add(time.Minute), clock.Now().Add(time.Hour), ids, deployer)
	require.NoError(t, err)

	assert.NoError(t, sys.EndElection(first.ID, admin2))
	assert.NoError(t, sys.EndElection(second.ID, creator2))
}

func TestToggleElectionStatus(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 1)

	created, err := sys.CreateElection("E", "d", clock.Now().Add(time.Minute), clock.Now().Add(time.Hour), ids, deployer)
	require.NoError(t, err)

	active, err := sys.ToggleElectionStatus(created.ID, deployer)
	require.NoError(t, err)
	assert.False(t, active)

	// Unlike EndElection the toggle flips either direction unconditionally.
	active, err = sys.ToggleElectionStatus(created.ID, deployer)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = sys.ToggleElectionStatus(99, deployer)
	assert.ErrorIs(t, err, ErrElectionNotFound)
	_, err = sys.ToggleElectionStatus(created.ID, stranger)
	assert.ErrorIs(t, err, ErrCallerIsNotAdminOrCreator)
}

func TestToggleReactivatesEndedElection(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 1)

	created, err := sys.CreateElection("E", "d", clock.Now().Add(time.Minute), clock.Now().Add(time.Hour), ids, deployer)
	require.NoError(t, err)
	require.NoError(t, sys.EndElection(created.ID, deployer))

	// Administrative override: the toggle can bring an ended election back.
	active, err := sys.ToggleElectionStatus(created.ID, deployer)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestElectionStateDerivation(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 1)

	start := clock.Now().Add(10 * time.Second)
	end := clock.Now().Add(time.Hour)
	created, err := sys.CreateElection("E", "d", start, end, ids, deployer)
	require.NoError(t, err)

	state, err := sys.ElectionState(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StateScheduled, state)

	clock.Set(start)
	state, _ = sys.ElectionState(created.ID)
	assert.Equal(t, StateOpen, state)

	clock.Set(end)
	state, _ = sys.ElectionState(created.ID)
	assert.Equal(t, StateOpen, state)

	clock.Set(end.Add(time.Second))
	state, _ = sys.ElectionState(created.ID)
	assert.Equal(t, StateClosed, state)

	// Deactivation closes regardless of the window.
	clock.Set(start.Add(time.Minute))
	_, err = sys.ToggleElectionStatus(created.ID, deployer)
	require.NoError(t, err)
	state, _ = sys.ElectionState(created.ID)
	assert.Equal(t, StateClosed, state)
}

func TestGetElectionResultsRosterOrder(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 3)

	roster := []uint64{ids[2], ids[0], ids[1]}
	created, err := sys.CreateElection("E", "d", clock.Now().Add(time.Minute), clock.Now().Add(time.Hour), roster, deployer)
	require.NoError(t, err)

	results, err := sys.GetElectionResults(created.ID)
	require.NoError(t, err)
	assert.Equal(t, roster, results.CandidateIDs)
	assert.Equal(t, []uint64{0, 0, 0}, results.VoteCounts)
	assert.Equal(t, uint64(0), results.TotalVotes)

	_, err = sys.GetElectionResults(99)
	assert.ErrorIs(t, err, ErrElectionNotFound)
}

func TestGetAllElections(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 1)

	for i := 0; i < 3; i++ {
		_, err := sys.CreateElection("E", "d", clock.Now().Add(time.Minute), clock.Now().Add(time.Hour), ids, deployer)
		require.NoError(t, err)
	}

	all := sys.GetAllElections()
	require.Len(t, all, 3)
	for i, e := range all {
		assert.Equal(t, uint64(i+1), e.ID)
	}
}

func TestElectionCreatedEvent(t *testing.T) {
	sys, clock := newTestSystem(t)
	ids := seedCandidates(t, sys, 2)

	start := clock.Now().Add(time.Minute)
	end := clock.Now().Add(time.Hour)
	created, err := sys.CreateElection("General Election", "Annual vote", start, end, ids, deployer)
	require.NoError(t, err)

	events := sys.Events()
	last := events[len(events)-1]
	assert.Equal(t, EventElectionCreated, last.Type)
	assert.Equal(t, deployer, last.Actor)
	assert.Equal(t, created.ID, last.ElectionID)
	assert.Equal(t, "General Election", last.Details)
	require.NotNil(t, last.StartTime)
	require.NotNil(t, last.EndTime)
	assert.Equal(t, start, *last.StartTime)
	assert.Equal(t, end, *last.EndTime)
	assert.Equal(t, clock.Now(), last.Timestamp)
}
