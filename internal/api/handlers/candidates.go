package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/interfaces"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
)

// AddCandidate creates a candidate in the global catalog
func AddCandidate(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		var req models.AddCandidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request format: "+err.Error())
			return
		}

		cand, err := services.System().AddCandidate(req.Name, req.Description, actor)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().Info("Candidate added - id: %d, name: %s, actor: %s",
			cand.ID, cand.Name, actor.Hex())
		respondCreated(c, "Candidate added", toCandidateResponse(cand))
	}
}

// GetCandidate returns one candidate by id
func GetCandidate(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respondBadRequest(c, "Invalid candidate id: "+c.Param("id"))
			return
		}

		cand, err := services.System().GetCandidate(id)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		respondOK(c, "", toCandidateResponse(cand))
	}
}

// ListCandidates returns all candidates in creation order
func ListCandidates(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates := services.System().GetAllCandidates()
		out := make([]models.CandidateResponse, len(candidates))
		for i, cand := range candidates {
			out[i] = toCandidateResponse(cand)
		}
		respondOK(c, "", out)
	}
}
