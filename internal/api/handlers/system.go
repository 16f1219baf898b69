package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/interfaces"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
)

// HealthCheck reports service health and the ledger pause state
func HealthCheck(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := make(map[string]models.HealthCheck)

		status := "healthy"
		httpStatus := http.StatusOK
		if err := services.GetDB().Ping(); err != nil {
			checks["database"] = models.HealthCheck{Status: "unhealthy", Message: err.Error()}
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["database"] = models.HealthCheck{Status: "healthy"}
		}
		checks["ledger"] = models.HealthCheck{Status: "healthy"}

		c.JSON(httpStatus, models.HealthCheckResponse{
			Status:    status,
			Timestamp: time.Now().Unix(),
			Paused:    services.System().IsPaused(),
			Checks:    checks,
		})
	}
}

// GetCounts returns the aggregate ledger counters
func GetCounts(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := services.EventRepository().CountEvents("")
		if err != nil {
			services.GetLogger().Error("Error counting audit events: %v", err)
		}

		respondOK(c, "", models.CountsResponse{
			Candidates: services.System().CandidateCount(),
			Elections:  services.System().ElectionCount(),
			Voters:     services.System().VoterCount(),
			Events:     int(events),
		})
	}
}

// IssueToken mints a session token for the given principal. Token issuance
// carries no role check; authorization happens in the ledger per operation.
func IssueToken(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request format: "+err.Error())
			return
		}

		principal, ok := parsePrincipal(req.Principal)
		if !ok {
			respondBadRequest(c, "Invalid principal address: "+req.Principal)
			return
		}

		token, expiresIn, err := services.IssueToken(principal)
		if err != nil {
			services.GetLogger().Error("Error issuing token for %s: %v", principal.Hex(), err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to issue token",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		services.GetLogger().SecurityLogger("token_issued", principal.Hex(), "session token minted")
		respondOK(c, "Token issued", models.TokenResponse{
			Token:     token,
			ExpiresIn: expiresIn,
		})
	}
}

// GetAuditEvents retrieves persisted ledger facts with filtering and
// pagination
func GetAuditEvents(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		offset := 0
		eventType := c.Query("type")
		actor := c.Query("actor")

		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
				limit = l
			}
		}
		if offsetStr := c.Query("offset"); offsetStr != "" {
			if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
				offset = o
			}
		}

		var electionID int64
		if idStr := c.Query("election_id"); idStr != "" {
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil && id > 0 {
				electionID = id
			}
		}

		var startTime, endTime *time.Time
		if s := c.Query("start_time"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				startTime = &t
			}
		}
		if s := c.Query("end_time"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				endTime = &t
			}
		}

		events, err := services.EventRepository().GetEvents(limit, offset, eventType, actor, electionID, startTime, endTime)
		if err != nil {
			services.GetLogger().Error("Error getting audit events: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to retrieve audit events",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		respondOK(c, "", gin.H{
			"events": events,
			"limit":  limit,
			"offset": offset,
			"total":  len(events),
		})
	}
}

// GetElectionAuditEvents retrieves persisted facts for one election
func GetElectionAuditEvents(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			respondBadRequest(c, "Invalid election id: "+c.Param("id"))
			return
		}

		limit := 100
		offset := 0
		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
				limit = l
			}
		}
		if offsetStr := c.Query("offset"); offsetStr != "" {
			if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
				offset = o
			}
		}

		events, err := services.EventRepository().GetEventsByElection(id, limit, offset)
		if err != nil {
			services.GetLogger().Error("Error getting election audit events: %v", err)
			c.JSON(http.StatusInternalServerError, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInternalError,
					Message: "Failed to retrieve audit events",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		respondOK(c, "", gin.H{
			"election_id": id,
			"events":      events,
			"total":       len(events),
		})
	}
}

// GetLiveEvents returns the in-memory fact log tail for quick inspection
func GetLiveEvents(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
				limit = l
			}
		}

		events := services.System().Events()
		if len(events) > limit {
			events = events[len(events)-limit:]
		}

		respondOK(c, "", gin.H{
			"events": events,
			"total":  len(events),
		})
	}
}
