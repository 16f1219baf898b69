package contract

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// AccessRegistry owns role membership and voter registration records. It is
// the leaf component: every other component consults it for authorization and
// nothing here depends back on them.
type AccessRegistry struct {
	roles  map[Role]map[common.Address]bool
	voters map[common.Address]*VoterRecord
	order  []common.Address // registration order, for stable listing
	events *EventLog
}

func NewAccessRegistry(events *EventLog) *AccessRegistry {
	return &AccessRegistry{
		roles: map[Role]map[common.Address]bool{
			RoleAdministrator:   make(map[common.Address]bool),
			RoleElectionCreator: make(map[common.Address]bool),
			RoleVoter:           make(map[common.Address]bool),
		},
		voters: make(map[common.Address]*VoterRecord),
		events: events,
	}
}

// HasRole reports whether principal currently holds role.
func (r *AccessRegistry) HasRole(role Role, principal common.Address) bool {
	return r.roles[role][principal]
}

// IsRegisteredVoter reports whether principal has ever been registered.
// Registration is permanent; only the voter role itself can be revoked.
func (r *AccessRegistry) IsRegisteredVoter(principal common.Address) bool {
	rec, ok := r.voters[principal]
	return ok && rec.IsRegistered
}

// GetVoter returns the registration record for principal.
func (r *AccessRegistry) GetVoter(principal common.Address) (VoterRecord, error) {
	rec, ok := r.voters[principal]
	if !ok {
		return VoterRecord{}, ErrVoterNotRegistered
	}
	return *rec, nil
}

// GetAllVoters returns registration records in registration order.
func (r *AccessRegistry) GetAllVoters() []VoterRecord {
	out := make([]VoterRecord, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, *r.voters[p])
	}
	return out
}

// VoterCount returns the number of registered voters.
func (r *AccessRegistry) VoterCount() int {
	return len(r.voters)
}

// RoleMembers returns the principals currently holding role. Order is not
// defined.
func (r *AccessRegistry) RoleMembers(role Role) []common.Address {
	members := make([]common.Address, 0, len(r.roles[role]))
	for p := range r.roles[role] {
		members = append(members, p)
	}
	return members
}

// GrantRole grants role to principal. Only administrators may grant roles.
// Granting a role the principal already holds is a no-op success.
func (r *AccessRegistry) GrantRole(role Role, principal, caller common.Address, now time.Time) error {
	if !r.HasRole(RoleAdministrator, caller) {
		return ErrCallerIsNotAdmin
	}
	if !validPrincipal(principal) {
		return ErrInvalidPrincipal
	}
	if r.roles[role][principal] {
		return nil
	}
	r.roles[role][principal] = true
	r.events.append(Event{
		Type:      EventRoleGranted,
		Actor:     caller,
		Principal: principal,
		Role:      role.String(),
		Timestamp: now,
	})
	return nil
}

// RevokeRole removes role from principal. Administrator revocation carries two
// guardrails: an administrator cannot revoke itself, and the last
// administrator can never be removed.
func (r *AccessRegistry) RevokeRole(role Role, principal, caller common.Address, now time.Time) error {
	if !r.HasRole(RoleAdministrator, caller) {
		return ErrCallerIsNotAdmin
	}
	if !validPrincipal(principal) {
		return ErrInvalidPrincipal
	}
	if !r.roles[role][principal] {
		return ErrAddressDoesNotHaveRole
	}
	if role == RoleAdministrator {
		// Last-admin check first: the sole administrator revoking itself is
		// a last-admin failure, not a self-revocation one.
		if r.adminCount() <= 1 {
			return ErrCannotRemoveLastAdmin
		}
		if principal == caller {
			return ErrCannotRevokeSelf
		}
	}
	delete(r.roles[role], principal)
	r.events.append(Event{
		Type:      EventRoleRevoked,
		Actor:     caller,
		Principal: principal,
		Role:      role.String(),
		Timestamp: now,
	})
	return nil
}

// RegisterVoter creates the permanent registration record for principal and
// grants the voter role. Unlike GrantRole, re-registering is an error, not a
// no-op.
func (r *AccessRegistry) RegisterVoter(principal, caller common.Address, now time.Time) (VoterRecord, error) {
	if !r.HasRole(RoleAdministrator, caller) {
		return VoterRecord{}, ErrCallerIsNotAdmin
	}
	if !validPrincipal(principal) {
		return VoterRecord{}, ErrInvalidPrincipal
	}
	if rec, ok := r.voters[principal]; ok && rec.IsRegistered {
		return VoterRecord{}, ErrAlreadyRegistered
	}
	rec := &VoterRecord{
		Principal:    principal,
		IsRegistered: true,
		RegisteredAt: now,
	}
	r.voters[principal] = rec
	r.order = append(r.order, principal)
	r.roles[RoleVoter][principal] = true
	r.events.append(Event{
		Type:      EventVoterRegistered,
		Actor:     caller,
		Principal: principal,
		Timestamp: now,
	})
	return *rec, nil
}

// BatchRegisterVoters registers every principal in the batch that is not
// already registered. Already-registered entries are skipped, not errored; the
// batch is partially successful by design. Returns the number actually
// registered.
func (r *AccessRegistry) BatchRegisterVoters(principals []common.Address, caller common.Address, now time.Time) (int, error) {
	if !r.HasRole(RoleAdministrator, caller) {
		return 0, ErrCallerIsNotAdmin
	}
	if len(principals) == 0 {
		return 0, ErrEmptyBatch
	}
	if len(principals) > MaxBatchSize {
		return 0, ErrBatchTooLarge
	}
	for _, p := range principals {
		if !validPrincipal(p) {
			return 0, ErrInvalidPrincipal
		}
	}
	registered := 0
	for _, p := range principals {
		if rec, ok := r.voters[p]; ok && rec.IsRegistered {
			continue
		}
		rec := &VoterRecord{
			Principal:    p,
			IsRegistered: true,
			RegisteredAt: now,
		}
		r.voters[p] = rec
		r.order = append(r.order, p)
		r.roles[RoleVoter][p] = true
		r.events.append(Event{
			Type:      EventVoterRegistered,
			Actor:     caller,
			Principal: p,
			Timestamp: now,
		})
		registered++
	}
	return registered, nil
}

// grant installs a role without authorization checks. Used only during system
// bootstrap to seat the deployer.
func (r *AccessRegistry) grant(role Role, principal common.Address) {
	r.roles[role][principal] = true
}

// adminCount returns the number of administrators.
func (r *AccessRegistry) adminCount() int {
	return len(r.roles[RoleAdministrator])
}
