package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/interfaces"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
)

// CreateElection creates an election with a fixed candidate roster
func CreateElection(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		var req models.CreateElectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request format: "+err.Error())
			return
		}

		election, err := services.System().CreateElection(
			req.Title,
			req.Description,
			time.Unix(req.StartTime, 0),
			time.Unix(req.EndTime, 0),
			req.CandidateIDs,
			actor,
		)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().Info("Election created - id: %d, title: %s, actor: %s",
			election.ID, election.Title, actor.Hex())
		respondCreated(c, "Election created", toElectionResponse(election, contract.StateScheduled))
	}
}

// EndElection permanently closes an election
func EndElection(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respondBadRequest(c, "Invalid election id: "+c.Param("id"))
			return
		}

		if err := services.System().EndElection(id, actor); err != nil {
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().Info("Election ended - id: %d, actor: %s", id, actor.Hex())
		respondOK(c, "Election ended", nil)
	}
}

// ToggleElectionStatus flips an election's active flag
func ToggleElectionStatus(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := caller(c)
		if !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respondBadRequest(c, "Invalid election id: "+c.Param("id"))
			return
		}

		active, err := services.System().ToggleElectionStatus(id, actor)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		services.GetLogger().Info("Election status toggled - id: %d, active: %t, actor: %s",
			id, active, actor.Hex())
		respondOK(c, "Election status toggled", gin.H{"id": id, "is_active": active})
	}
}

// GetElection returns one election snapshot with its derived state
func GetElection(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respondBadRequest(c, "Invalid election id: "+c.Param("id"))
			return
		}

		election, err := services.System().GetElection(id)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		state, err := services.System().ElectionState(id)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		respondOK(c, "", toElectionResponse(election, state))
	}
}

// ListElections returns all elections in creation order
func ListElections(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		elections := services.System().GetAllElections()
		out := make([]models.ElectionResponse, 0, len(elections))
		for _, election := range elections {
			state, err := services.System().ElectionState(election.ID)
			if err != nil {
				respondLedgerError(c, err)
				return
			}
			out = append(out, toElectionResponse(election, state))
		}
		respondOK(c, "", out)
	}
}

// GetElectionResults returns tallies in roster order
func GetElectionResults(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			respondBadRequest(c, "Invalid election id: "+c.Param("id"))
			return
		}

		results, err := services.System().GetElectionResults(id)
		if err != nil {
			respondLedgerError(c, err)
			return
		}

		respondOK(c, "", models.ElectionResultsResponse{
			ElectionID:   results.ElectionID,
			CandidateIDs: results.CandidateIDs,
			VoteCounts:   results.VoteCounts,
			TotalVotes:   results.TotalVotes,
		})
	}
}
