package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/interfaces"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
)

// CastVote records a ballot for the authenticated principal
func CastVote(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		var req models.CastVoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request format: "+err.Error())
			return
		}

		services.GetLogger().Info("Vote submission - election: %d, candidate: %d, principal: %s, ip: %s",
			req.ElectionID, req.CandidateID, actor.Hex(), c.ClientIP())

		if err := services.System().CastVote(req.ElectionID, req.CandidateID, actor); err != nil {
			services.GetLogger().Warning("Vote rejected - election: %d, principal: %s: %v",
				req.ElectionID, actor.Hex(), err)
			respondLedgerError(c, err)
			return
		}

		respondOK(c, "Vote cast successfully", gin.H{
			"election_id":  req.ElectionID,
			"candidate_id": req.CandidateID,
		})
	}
}

// HasVoted reports whether a principal has cast a ballot in an election
func HasVoted(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respondBadRequest(c, "Invalid election id: "+c.Param("id"))
			return
		}
		principal, ok := parsePrincipal(c.Param("principal"))
		if !ok {
			respondBadRequest(c, "Invalid principal address: "+c.Param("principal"))
			return
		}

		voted, err := services.System().HasVoted(id, principal)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		respondOK(c, "", gin.H{
			"election_id": id,
			"principal":   principal.Hex(),
			"has_voted":   voted,
		})
	}
}
