package handlers

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/middlewares"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.BaseResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.BaseResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    models.ErrCodeInvalidRequest,
			Message: message,
		},
		Timestamp: time.Now().Unix(),
	})
}

// respondLedgerError maps a ledger sentinel onto its HTTP representation.
func respondLedgerError(c *gin.Context, err error) {
	apiErr := models.FromLedgerError(err)
	c.JSON(apiErr.StatusCode, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
		Timestamp: time.Now().Unix(),
	})
}

// caller pulls the authenticated principal set by the auth middleware. A
// missing principal on an authenticated route means the route table is wrong.
func caller(c *gin.Context) (common.Address, bool) {
	principal, ok := middlewares.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.BaseResponse{
			Success: false,
			Error: &models.ErrorInfo{
				Code:    models.ErrCodeUnauthorized,
				Message: "Authentication required",
			},
			Timestamp: time.Now().Unix(),
		})
	}
	return principal, ok
}

// parsePrincipal validates a request-supplied address string.
func parsePrincipal(raw string) (common.Address, bool) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func toCandidateResponse(cand contract.Candidate) models.CandidateResponse {
	return models.CandidateResponse{
		ID:          cand.ID,
		Name:        cand.Name,
		Description: cand.Description,
		VoteCount:   cand.VoteCount,
		AddedBy:     cand.AddedBy.Hex(),
		AddedAt:     cand.AddedAt.Unix(),
	}
}

func toElectionResponse(e contract.Election, state contract.ElectionState) models.ElectionResponse {
	return models.ElectionResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		StartTime:    e.StartTime.Unix(),
		EndTime:      e.EndTime.Unix(),
		IsActive:     e.IsActive,
		State:        string(state),
		CandidateIDs: e.CandidateIDs,
		TotalVotes:   e.TotalVotes,
		Creator:      e.Creator.Hex(),
		CreatedAt:    e.CreatedAt.Unix(),
	}
}
