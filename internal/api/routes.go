package api

import (
	"github.com/gin-gonic/gin"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/handlers"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/interfaces"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/middlewares"
)

// SetupRoutes configures all API routes with proper middleware
func SetupRoutes(router *gin.Engine, services interfaces.Services) {
	cfg := services.GetConfig()

	// Global middleware
	router.Use(middlewares.Recovery())
	router.Use(middlewares.CORS(&cfg.API.CORS))
	router.Use(middlewares.Security())
	router.Use(middlewares.RequestLogging(services.GetLogger()))
	router.Use(middlewares.RateLimit(cfg.API.RateLimit, cfg.API.BurstLimit))

	// Health check (no auth required)
	router.GET("/health", handlers.HealthCheck(services))
	router.GET("/ping", handlers.HealthCheck(services))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		setupPublicRoutes(v1, services)
		setupAuthenticatedRoutes(v1, services)
		setupWebSocketRoutes(v1, services)
	}
}

// setupPublicRoutes configures read-only routes that don't require
// authentication. All ledger reads are public; only mutations need a
// principal.
func setupPublicRoutes(rg *gin.RouterGroup, services interfaces.Services) {
	public := rg.Group("/public")
	{
		// Authentication
		public.POST("/auth/token", handlers.IssueToken(services))

		// Elections
		public.GET("/elections", handlers.ListElections(services))
		public.GET("/elections/:id", handlers.GetElection(services))
		public.GET("/elections/:id/results", handlers.GetElectionResults(services))
		public.GET("/elections/:id/voted/:principal", handlers.HasVoted(services))

		// Candidates
		public.GET("/candidates", handlers.ListCandidates(services))
		public.GET("/candidates/:id", handlers.GetCandidate(services))

		// Voters and roles
		public.GET("/voters", handlers.ListVoters(services))
		public.GET("/voters/:principal", handlers.GetVoter(services))
		public.GET("/roles/:role/members", handlers.GetRoleMembers(services))

		// System
		public.GET("/counts", handlers.GetCounts(services))
	}
}

// setupAuthenticatedRoutes configures routes that require a principal
func setupAuthenticatedRoutes(rg *gin.RouterGroup, services interfaces.Services) {
	authenticated := rg.Group("/")
	authenticated.Use(middlewares.PrincipalRequired(services))
	{
		// Voting endpoints
		voting := authenticated.Group("/voting")
		{
			voting.POST("/cast", handlers.CastVote(services))
		}

		// Governance endpoints. Authorization happens in the ledger itself,
		// so the route table carries no role middleware.
		admin := authenticated.Group("/admin")
		{
			admin.POST("/roles/grant", handlers.GrantRole(services))
			admin.POST("/roles/revoke", handlers.RevokeRole(services))
			admin.POST("/voters", handlers.RegisterVoter(services))
			admin.POST("/voters/batch", handlers.BatchRegisterVoters(services))
			admin.POST("/pause", handlers.PauseSystem(services))
			admin.POST("/unpause", handlers.UnpauseSystem(services))
		}

		// Election management
		elections := authenticated.Group("/elections")
		{
			elections.POST("/", handlers.CreateElection(services))
			elections.POST("/:id/end", handlers.EndElection(services))
			elections.POST("/:id/toggle", handlers.ToggleElectionStatus(services))
		}

		// Candidate management
		candidates := authenticated.Group("/candidates")
		{
			candidates.POST("/", handlers.AddCandidate(services))
		}

		// Audit endpoints
		audit := authenticated.Group("/audit")
		{
			audit.GET("/events", handlers.GetAuditEvents(services))
			audit.GET("/elections/:id/events", handlers.GetElectionAuditEvents(services))
			audit.GET("/events/live", handlers.GetLiveEvents(services))
		}
	}
}

// setupWebSocketRoutes configures WebSocket endpoints
func setupWebSocketRoutes(rg *gin.RouterGroup, services interfaces.Services) {
	ws := rg.Group("/ws")
	ws.Use(middlewares.WSPrincipalRequired(services))
	{
		ws.GET("/events", handlers.EventFeed(services))
	}
}
