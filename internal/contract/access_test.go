package contract

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantRole(t *testing.T) {
	sys, _ := newTestSystem(t)

	require.NoError(t, sys.GrantRole(RoleElectionCreator, creator, deployer))
	assert.True(t, sys.HasRole(RoleElectionCreator, creator))

	// Roles are independent grants, not implications.
	assert.False(t, sys.HasRole(RoleAdministrator, creator))
	assert.False(t, sys.HasRole(RoleVoter, creator))
}

func TestGrantRoleIdempotent(t *testing.T) {
	sys, _ := newTestSystem(t)

	require.NoError(t, sys.GrantRole(RoleElectionCreator, creator, deployer))
	before := len(sys.Events())

	// Granting an already-held role is a no-op success and emits nothing.
	assert.NoError(t, sys.GrantRole(RoleElectionCreator, creator, deployer))
	assert.Equal(t, before, len(sys.Events()))
}

func TestGrantRoleAuthorization(t *testing.T) {
	sys, _ := newTestSystem(t)

	err := sys.GrantRole(RoleVoter, voter1, stranger)
	assert.ErrorIs(t, err, ErrCallerIsNotAdmin)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	assert.ErrorIs(t, sys.GrantRole(RoleVoter, common.Address{}, deployer), ErrInvalidPrincipal)
}

func TestRevokeRole(t *testing.T) {
	sys, _ := newTestSystem(t)

	require.NoError(t, sys.GrantRole(RoleElectionCreator, creator, deployer))
	require.NoError(t, sys.RevokeRole(RoleElectionCreator, creator, deployer))
	assert.False(t, sys.HasRole(RoleElectionCreator, creator))

	assert.ErrorIs(t, sys.RevokeRole(RoleElectionCreator, creator, deployer), ErrAddressDoesNotHaveRole)
}

func TestRevokeAdminGuardrails(t *testing.T) {
	sys, _ := newTestSystem(t)

	// The sole administrator can never be removed, even by itself.
	assert.ErrorIs(t, sys.RevokeRole(RoleAdministrator, deployer, deployer), ErrCannotRemoveLastAdmin)

	second := common.HexToAddress("0x28a8746e75304c0780E011BEd21C72cD78cd535E")
	require.NoError(t, sys.GrantRole(RoleAdministrator, second, deployer))

	// With two admins, self-revocation is still blocked.
	assert.ErrorIs(t, sys.RevokeRole(RoleAdministrator, deployer, deployer), ErrCannotRevokeSelf)

	// Revoking the other admin works; second becomes the last admin.
	require.NoError(t, sys.RevokeRole(RoleAdministrator, deployer, second))
	assert.False(t, sys.HasRole(RoleAdministrator, deployer))
	assert.ErrorIs(t, sys.RevokeRole(RoleAdministrator, second, second), ErrCannotRemoveLastAdmin)
	assert.Equal(t, []common.Address{second}, sys.RoleMembers(RoleAdministrator))
}

func TestRegisterVoter(t *testing.T) {
	sys, clock := newTestSystem(t)

	rec, err := sys.RegisterVoter(voter1, deployer)
	require.NoError(t, err)
	assert.Equal(t, voter1, rec.Principal)
	assert.True(t, rec.IsRegistered)
	assert.Equal(t, clock.Now(), rec.RegisteredAt)

	assert.True(t, sys.IsRegisteredVoter(voter1))
	assert.True(t, sys.HasRole(RoleVoter, voter1))
	assert.Equal(t, 1, sys.VoterCount())
}

func TestRegisterVoterTwiceFails(t *testing.T) {
	sys, _ := newTestSystem(t)

	_, err := sys.RegisterVoter(voter1, deployer)
	require.NoError(t, err)

	_, err = sys.RegisterVoter(voter1, deployer)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// State unchanged by the failed second call.
	assert.Equal(t, 1, sys.VoterCount())
	rec, err := sys.GetVoter(voter1)
	require.NoError(t, err)
	assert.True(t, rec.IsRegistered)
}

func TestRegisterVoterAuthorization(t *testing.T) {
	sys, _ := newTestSystem(t)

	_, err := sys.RegisterVoter(voter1, stranger)
	assert.ErrorIs(t, err, ErrCallerIsNotAdmin)

	_, err = sys.RegisterVoter(common.Address{}, deployer)
	assert.ErrorIs(t, err, ErrInvalidPrincipal)
}

func TestRegistrationSurvivesRoleRevocation(t *testing.T) {
	sys, _ := newTestSystem(t)

	_, err := sys.RegisterVoter(voter1, deployer)
	require.NoError(t, err)
	require.NoError(t, sys.RevokeRole(RoleVoter, voter1, deployer))

	// The historical record persists for audit; only the role is gone.
	assert.False(t, sys.HasRole(RoleVoter, voter1))
	assert.True(t, sys.IsRegisteredVoter(voter1))
	rec, err := sys.GetVoter(voter1)
	require.NoError(t, err)
	assert.True(t, rec.IsRegistered)
}

func TestBatchRegisterVoters(t *testing.T) {
	sys, _ := newTestSystem(t)

	_, err := sys.RegisterVoter(voter1, deployer)
	require.NoError(t, err)

	// Already-registered entries are skipped, not errored.
	registered, err := sys.BatchRegisterVoters([]common.Address{voter1, voter2, voter1}, deployer)
	require.NoError(t, err)
	assert.Equal(t, 1, registered)
	assert.Equal(t, 2, sys.VoterCount())
	assert.True(t, sys.IsRegisteredVoter(voter2))
}

func TestBatchRegisterVotersValidation(t *testing.T) {
	sys, _ := newTestSystem(t)

	_, err := sys.BatchRegisterVoters(nil, deployer)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	big := make([]common.Address, MaxBatchSize+1)
	for i := range big {
		big[i] = common.BigToAddress(common.Big1)
	}
	_, err = sys.BatchRegisterVoters(big, deployer)
	assert.ErrorIs(t, err, ErrBatchTooLarge)

	_, err = sys.BatchRegisterVoters([]common.Address{voter1}, stranger)
	assert.ErrorIs(t, err, ErrCallerIsNotAdmin)

	_, err = sys.BatchRegisterVoters([]common.Address{voter1, {}}, deployer)
	assert.ErrorIs(t, err, ErrInvalidPrincipal)
	// Validation precedes every write: voter1 must not have been registered.
	assert.Equal(t, 0, sys.VoterCount())
}

func TestGetVoterNotRegistered(t *testing.T) {
	sys, _ := newTestSystem(t)

	_, err := sys.GetVoter(voter1)
	assert.ErrorIs(t, err, ErrVoterNotRegistered)
}

func TestGetAllVotersOrder(t *testing.T) {
	sys, clock := newTestSystem(t)

	_, err := sys.RegisterVoter(voter1, deployer)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = sys.RegisterVoter(voter2, deployer)
	require.NoError(t, err)

	voters := sys.GetAllVoters()
	require.Len(t, voters, 2)
	assert.Equal(t, voter1, voters[0].Principal)
	assert.Equal(t, voter2, voters[1].Principal)
	assert.True(t, voters[0].RegisteredAt.Before(voters[1].RegisteredAt))
}
