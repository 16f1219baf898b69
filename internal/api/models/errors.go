package models

import (
	"errors"
	"net/http"

	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
)

// Error codes
const (
	// General errors
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeInternalError  = "INTERNAL_ERROR"
	ErrCodeInvalidToken   = "INVALID_TOKEN"

	// Ledger specific errors
	ErrCodeNotAuthorized          = "NOT_AUTHORIZED"
	ErrCodeInvalidCandidateData   = "INVALID_CANDIDATE_DATA"
	ErrCodeInvalidElectionData    = "INVALID_ELECTION_DATA"
	ErrCodeInvalidTimeRange       = "INVALID_TIME_RANGE"
	ErrCodeEmptyBatch             = "EMPTY_BATCH"
	ErrCodeBatchTooLarge          = "BATCH_TOO_LARGE"
	ErrCodeInvalidPrincipal       = "INVALID_PRINCIPAL"
	ErrCodeCandidateNotFound      = "CANDIDATE_NOT_FOUND"
	ErrCodeElectionNotFound       = "ELECTION_NOT_FOUND"
	ErrCodeVoterNotRegistered     = "VOTER_NOT_REGISTERED"
	ErrCodeAlreadyRegistered      = "ALREADY_REGISTERED"
	ErrCodeAlreadyVoted           = "ALREADY_VOTED"
	ErrCodeCandidateNotInElection = "CANDIDATE_NOT_IN_ELECTION"
	ErrCodeElectionAlreadyEnded   = "ELECTION_ALREADY_ENDED"
	ErrCodeDuplicateCandidate     = "DUPLICATE_CANDIDATE"
	ErrCodeRoleNotHeld            = "ROLE_NOT_HELD"
	ErrCodeElectionNotActive      = "ELECTION_NOT_ACTIVE"
	ErrCodeElectionNotStarted     = "ELECTION_NOT_STARTED"
	ErrCodeElectionEnded          = "ELECTION_ENDED"
	ErrCodeCannotRevokeSelf       = "CANNOT_REVOKE_SELF"
	ErrCodeCannotRemoveLastAdmin  = "CANNOT_REMOVE_LAST_ADMIN"
	ErrCodeSystemPaused           = "SYSTEM_PAUSED"
	ErrCodeReentrantCall          = "REENTRANT_CALL"
)

// APIError represents a structured API error
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	StatusCode int    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error
func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to the error
func (e *APIError) WithDetails(details string) *APIError {
	e.Details = details
	return e
}

// ledgerErrorMap pairs every ledger sentinel with its API code and HTTP
// status.
var ledgerErrorMap = []struct {
	err    error
	code   string
	status int
}{
	{contract.ErrInvalidCandidateData, ErrCodeInvalidCandidateData, http.StatusBadRequest},
	{contract.ErrInvalidElectionData, ErrCodeInvalidElectionData, http.StatusBadRequest},
	{contract.ErrInvalidTimeRange, ErrCodeInvalidTimeRange, http.StatusBadRequest},
	{contract.ErrEmptyBatch, ErrCodeEmptyBatch, http.StatusBadRequest},
	{contract.ErrBatchTooLarge, ErrCodeBatchTooLarge, http.StatusBadRequest},
	{contract.ErrInvalidPrincipal, ErrCodeInvalidPrincipal, http.StatusBadRequest},
	{contract.ErrCandidateNotFound, ErrCodeCandidateNotFound, http.StatusNotFound},
	{contract.ErrElectionNotFound, ErrCodeElectionNotFound, http.StatusNotFound},
	{contract.ErrVoterNotRegistered, ErrCodeVoterNotRegistered, http.StatusNotFound},
	{contract.ErrAlreadyRegistered, ErrCodeAlreadyRegistered, http.StatusConflict},
	{contract.ErrAlreadyVoted, ErrCodeAlreadyVoted, http.StatusConflict},
	{contract.ErrCandidateNotInElection, ErrCodeCandidateNotInElection, http.StatusConflict},
	{contract.ErrElectionAlreadyEnded, ErrCodeElectionAlreadyEnded, http.StatusConflict},
	{contract.ErrDuplicateCandidate, ErrCodeDuplicateCandidate, http.StatusConflict},
	{contract.ErrAddressDoesNotHaveRole, ErrCodeRoleNotHeld, http.StatusConflict},
	{contract.ErrElectionNotActive, ErrCodeElectionNotActive, http.StatusConflict},
	{contract.ErrElectionNotStarted, ErrCodeElectionNotStarted, http.StatusConflict},
	{contract.ErrElectionEnded, ErrCodeElectionEnded, http.StatusConflict},
	{contract.ErrCannotRevokeSelf, ErrCodeCannotRevokeSelf, http.StatusConflict},
	{contract.ErrCannotRemoveLastAdmin, ErrCodeCannotRemoveLastAdmin, http.StatusConflict},
	{contract.ErrSystemPaused, ErrCodeSystemPaused, http.StatusServiceUnavailable},
	{contract.ErrReentrantCall, ErrCodeReentrantCall, http.StatusConflict},
}

// FromLedgerError maps a ledger error onto its API representation. The
// authorization family is matched as a group so the wrapped role-specific
// variants collapse onto one code.
func FromLedgerError(err error) *APIError {
	if errors.Is(err, contract.ErrNotAuthorized) {
		return NewAPIError(ErrCodeNotAuthorized, err.Error(), http.StatusForbidden)
	}
	for _, m := range ledgerErrorMap {
		if errors.Is(err, m.err) {
			return NewAPIError(m.code, err.Error(), m.status)
		}
	}
	return NewAPIError(ErrCodeInternalError, err.Error(), http.StatusInternalServerError)
}
