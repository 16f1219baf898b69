package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
)

func TestFromLedgerErrorAuthorizationFamily(t *testing.T) {
	tests := []error{
		contract.ErrNotAuthorized,
		contract.ErrCallerIsNotAdmin,
		contract.ErrCallerIsNotCreator,
		contract.ErrCallerIsNotVoter,
		contract.ErrCallerIsNotAdminOrCreator,
	}

	for _, err := range tests {
		apiErr := FromLedgerError(err)
		assert.Equal(t, ErrCodeNotAuthorized, apiErr.Code, "error: %v", err)
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode, "error: %v", err)
	}
}

func TestFromLedgerErrorStatusClasses(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{contract.ErrInvalidCandidateData, ErrCodeInvalidCandidateData, http.StatusBadRequest},
		{contract.ErrInvalidTimeRange, ErrCodeInvalidTimeRange, http.StatusBadRequest},
		{contract.ErrElectionNotFound, ErrCodeElectionNotFound, http.StatusNotFound},
		{contract.ErrAlreadyVoted, ErrCodeAlreadyVoted, http.StatusConflict},
		{contract.ErrCannotRemoveLastAdmin, ErrCodeCannotRemoveLastAdmin, http.StatusConflict},
		{contract.ErrSystemPaused, ErrCodeSystemPaused, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		apiErr := FromLedgerError(tt.err)
		assert.Equal(t, tt.code, apiErr.Code, "error: %v", tt.err)
		assert.Equal(t, tt.status, apiErr.StatusCode, "error: %v", tt.err)
	}
}

func TestFromLedgerErrorWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("create election: %w", contract.ErrInvalidTimeRange)

	apiErr := FromLedgerError(wrapped)

	assert.Equal(t, ErrCodeInvalidTimeRange, apiErr.Code)
	assert.Equal(t, wrapped.Error(), apiErr.Message)
}

func TestFromLedgerErrorUnknownFallsBackToInternal(t *testing.T) {
	apiErr := FromLedgerError(errors.New("disk on fire"))

	assert.Equal(t, ErrCodeInternalError, apiErr.Code)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
