package handlers

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/interfaces"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
)

// GrantRole handles role grant requests from administrators
func GrantRole(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		var req models.GrantRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request format: "+err.Error())
			return
		}

		role, ok := contract.ParseRole(req.Role)
		if !ok {
			respondBadRequest(c, "Unknown role: "+req.Role)
			return
		}
		principal, ok := parsePrincipal(req.Principal)
		if !ok {
			respondBadRequest(c, "Invalid principal address: "+req.Principal)
			return
		}

		if err := services.System().GrantRole(role, principal, actor); err != nil {
			services.GetLogger().Warning("Role grant rejected - role: %s, principal: %s, actor: %s: %v",
				req.Role, principal.Hex(), actor.Hex(), err)
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().SecurityLogger("role_granted", actor.Hex(),
			"granted "+req.Role+" to "+principal.Hex())
		respondOK(c, "Role granted", nil)
	}
}

// RevokeRole handles role revocation requests from administrators
func RevokeRole(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		var req models.GrantRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request format: "+err.Error())
			return
		}

		role, ok := contract.ParseRole(req.Role)
		if !ok {
			respondBadRequest(c, "Unknown role: "+req.Role)
			return
		}
		principal, ok := parsePrincipal(req.Principal)
		if !ok {
			respondBadRequest(c, "Invalid principal address: "+req.Principal)
			return
		}

		if err := services.System().RevokeRole(role, principal, actor); err != nil {
			services.GetLogger().Warning("Role revocation rejected - role: %s, principal: %s, actor: %s: %v",
				req.Role, principal.Hex(), actor.Hex(), err)
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().SecurityLogger("role_revoked", actor.Hex(),
			"revoked "+req.Role+" from "+principal.Hex())
		respondOK(c, "Role revoked", nil)
	}
}

// GetRoleMembers lists the principals holding a role
func GetRoleMembers(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := contract.ParseRole(c.Param("role"))
		if !ok {
			respondBadRequest(c, "Unknown role: "+c.Param("role"))
			return
		}

		members := services.System().RoleMembers(role)
		hexMembers := make([]string, len(members))
		for i, m := range members {
			hexMembers[i] = m.Hex()
		}

		respondOK(c, "", models.RoleMembershipResponse{
			Role:    role.String(),
			Members: hexMembers,
		})
	}
}

// RegisterVoter registers a single voter principal
func RegisterVoter(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		var req models.RegisterVoterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request format: "+err.Error())
			return
		}

		principal, ok := parsePrincipal(req.Principal)
		if !ok {
			respondBadRequest(c, "Invalid principal address: "+req.Principal)
			return
		}

		record, err := services.System().RegisterVoter(principal, actor)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().Info("Voter registered - principal: %s, actor: %s", principal.Hex(), actor.Hex())
		respondCreated(c, "Voter registered", models.VoterStatusResponse{
			Principal:    record.Principal.Hex(),
			IsRegistered: record.IsRegistered,
			RegisteredAt: record.RegisteredAt.Unix(),
			HasVoterRole: services.System().HasRole(contract.RoleVoter, principal),
		})
	}
}

// BatchRegisterVoters registers a batch of voters, skipping any already
// registered
func BatchRegisterVoters(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		var req models.BatchRegisterVotersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request format: "+err.Error())
			return
		}

		principals := make([]common.Address, 0, len(req.Principals))
		for _, raw := range req.Principals {
			principal, ok := parsePrincipal(raw)
			if !ok {
				respondBadRequest(c, "Invalid principal address: "+raw)
				return
			}
			principals = append(principals, principal)
		}

		registered, err := services.System().BatchRegisterVoters(principals, actor)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().Info("Batch voter registration - requested: %d, registered: %d, actor: %s",
			len(principals), registered, actor.Hex())
		respondOK(c, "Batch registration completed", models.BatchRegisterResponse{
			Requested:  len(principals),
			Registered: registered,
			Skipped:    len(principals) - registered,
		})
	}
}

// GetVoter returns the registration record for one principal
func GetVoter(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := parsePrincipal(c.Param("principal"))
		if !ok {
			respondBadRequest(c, "Invalid principal address: "+c.Param("principal"))
			return
		}

		record, err := services.System().GetVoter(principal)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		respondOK(c, "", models.VoterStatusResponse{
			Principal:    record.Principal.Hex(),
			IsRegistered: record.IsRegistered,
			RegisteredAt: record.RegisteredAt.Unix(),
			HasVoterRole: services.System().HasRole(contract.RoleVoter, principal),
		})
	}
}

// ListVoters returns all registered voters
func ListVoters(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		records := services.System().GetAllVoters()
		out := make([]models.VoterStatusResponse, len(records))
		for i, record := range records {
			out[i] = models.VoterStatusResponse{
				Principal:    record.Principal.Hex(),
				IsRegistered: record.IsRegistered,
				RegisteredAt: record.RegisteredAt.Unix(),
				HasVoterRole: services.System().HasRole(contract.RoleVoter, record.Principal),
			}
		}
		respondOK(c, "", out)
	}
}

// PauseSystem halts all ledger mutations
func PauseSystem(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		if err := services.System().Pause(actor); err != nil {
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().SecurityLogger("system_paused", actor.Hex(), "ledger mutations halted")
		respondOK(c, "System paused", nil)
	}
}

// UnpauseSystem resumes ledger mutations
func UnpauseSystem(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		if err := services.System().Unpause(actor); err != nil {
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().SecurityLogger("system_unpaused", actor.Hex(), "ledger mutations resumed")
		respondOK(c, "System unpaused", nil)
	}
}
