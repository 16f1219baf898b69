package contract

import (
	"errors"
	"fmt"
)

// Authorization errors
var (
	ErrNotAuthorized             = errors.New("caller is not authorized")
	ErrCallerIsNotAdmin          = fmt.Errorf("%w: administrator role required", ErrNotAuthorized)
	ErrCallerIsNotCreator        = fmt.Errorf("%w: election creator role required", ErrNotAuthorized)
	ErrCallerIsNotVoter          = fmt.Errorf("%w: voter role required", ErrNotAuthorized)
	ErrCallerIsNotAdminOrCreator = fmt.Errorf("%w: administrator or election creator role required", ErrNotAuthorized)
)

// Validation errors
var (
	ErrInvalidCandidateData = errors.New("candidate name and description must be non-empty and within length limits")
	ErrInvalidElectionData  = errors.New("election title and description must be non-empty and within length limits")
	ErrInvalidTimeRange     = errors.New("election start time must be in the future and before the end time")
	ErrEmptyBatch           = errors.New("voter batch is empty")
	ErrBatchTooLarge        = errors.New("voter batch exceeds the maximum batch size")
	ErrInvalidPrincipal     = errors.New("principal must be a non-zero address")
)

// Not-found errors
var (
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrElectionNotFound   = errors.New("election not found")
	ErrVoterNotRegistered = errors.New("voter is not registered")
)

// Conflict and state errors
var (
	ErrAlreadyRegistered      = errors.New("voter is already registered")
	ErrAlreadyVoted           = errors.New("voter has already cast a ballot in this election")
	ErrCandidateNotInElection = errors.New("candidate is not on this election's roster")
	ErrElectionAlreadyEnded   = errors.New("election has already been ended")
	ErrDuplicateCandidate     = errors.New("election roster contains a duplicate candidate")
	ErrAddressAlreadyHasRole  = errors.New("address already holds this role")
	ErrAddressDoesNotHaveRole = errors.New("address does not hold this role")
)

// Lifecycle and timing errors
var (
	ErrElectionNotActive  = errors.New("election is not active")
	ErrElectionNotStarted = errors.New("election has not started yet")
	ErrElectionEnded      = errors.New("election voting window has closed")
)

// Governance guardrails
var (
	ErrCannotRevokeSelf      = errors.New("administrators cannot revoke their own administrator role")
	ErrCannotRemoveLastAdmin = errors.New("cannot remove the last administrator")
)

// System errors
var (
	ErrSystemPaused  = errors.New("system is paused")
	ErrReentrantCall = errors.New("reentrant call detected")
)
