package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/middlewares"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
	"github.com/aryanpatil97/Blockchain-Voting/internal/database/repositories"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/config"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/logger"
)

var (
	deployer = common.HexToAddress("0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1")
	voter1   = common.HexToAddress("0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b")
	stranger = common.HexToAddress("0xFFcf8FDEE72ac11b5c542428B35EEF5769C409f0")
)

// stubServices satisfies interfaces.Services with only what the
// ledger-facing handlers touch.
type stubServices struct {
	system *contract.VotingSystem
	log    *logger.Logger
	cfg    *config.Config
}

func (s *stubServices) System() *contract.VotingSystem                 { return s.system }
func (s *stubServices) GetLogger() *logger.Logger                      { return s.log }
func (s *stubServices) GetConfig() *config.Config                      { return s.cfg }
func (s *stubServices) GetDB() *sql.DB                                 { return nil }
func (s *stubServices) EventRepository() *repositories.EventRepository { return nil }
func (s *stubServices) IsHealthy() bool                                { return true }

func (s *stubServices) IssueToken(principal common.Address) (string, int64, error) {
	return "test-token", 3600, nil
}

func (s *stubServices) ValidateToken(token string) (common.Address, error) {
	return deployer, nil
}

type fixture struct {
	services *stubServices
	router   *gin.Engine
	now      time.Time
}

// asPrincipal injects an authenticated principal the way the auth
// middleware would.
func asPrincipal(principal common.Address) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middlewares.PrincipalKey, principal)
		c.Next()
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fx := &fixture{router: gin.New(), now: time.Unix(1700000000, 0)}
	system, err := contract.NewVotingSystem(deployer, func() time.Time { return fx.now })
	require.NoError(t, err)

	fx.services = &stubServices{
		system: system,
		log:    logger.NewLogger(logger.Options{Level: "error"}),
		cfg:    &config.Config{},
	}
	return fx
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) models.BaseResponse {
	t.Helper()
	var resp models.BaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAddCandidateRequiresCreatorRole(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/candidates", asPrincipal(stranger), AddCandidate(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/candidates", models.AddCandidateRequest{
		Name:        "Alice Johnson",
		Description: "Community representative",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, models.ErrCodeNotAuthorized, resp.Error.Code)
}

func TestAddCandidateAndGet(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/candidates", asPrincipal(deployer), AddCandidate(fx.services))
	fx.router.GET("/candidates/:id", GetCandidate(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/candidates", models.AddCandidateRequest{
		Name:        "Alice Johnson",
		Description: "Community representative",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, fx.router, http.MethodGet, "/candidates/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Alice Johnson", data["name"])
	assert.Equal(t, float64(0), data["vote_count"])
}

func TestGetElectionNotFound(t *testing.T) {
	fx := newFixture(t)
	fx.router.GET("/elections/:id", GetElection(fx.services))

	w := doJSON(t, fx.router, http.MethodGet, "/elections/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, models.ErrCodeElectionNotFound, resp.Error.Code)
}

func TestCreateElectionRejectsBadTimeRange(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/candidates", asPrincipal(deployer), AddCandidate(fx.services))
	fx.router.POST("/elections", asPrincipal(deployer), CreateElection(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/candidates", models.AddCandidateRequest{
		Name: "Alice Johnson", Description: "Community representative",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, fx.router, http.MethodPost, "/elections", models.CreateElectionRequest{
		Title:        "General Election",
		StartTime:    fx.now.Add(2 * time.Hour).Unix(),
		EndTime:      fx.now.Add(time.Hour).Unix(),
		CandidateIDs: []uint64{1},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, models.ErrCodeInvalidTimeRange, resp.Error.Code)
}

func TestCastVoteFlow(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/candidates", asPrincipal(deployer), AddCandidate(fx.services))
	fx.router.POST("/elections", asPrincipal(deployer), CreateElection(fx.services))
	fx.router.POST("/vote", asPrincipal(voter1), CastVote(fx.services))
	fx.router.GET("/elections/:id/results", GetElectionResults(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/candidates", models.AddCandidateRequest{
		Name: "Alice Johnson", Description: "Community representative",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, fx.router, http.MethodPost, "/elections", models.CreateElectionRequest{
		Title:        "General Election",
		StartTime:    fx.now.Add(time.Hour).Unix(),
		EndTime:      fx.now.Add(2 * time.Hour).Unix(),
		CandidateIDs: []uint64{1},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, fx.services.system.GrantRole(contract.RoleVoter, voter1, deployer))
	_, err := fx.services.system.RegisterVoter(voter1, deployer)
	require.NoError(t, err)

	// Election has not opened yet.
	w = doJSON(t, fx.router, http.MethodPost, "/vote", models.CastVoteRequest{
		ElectionID: 1, CandidateID: 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrCodeElectionNotStarted, decodeResponse(t, w).Error.Code)

	// Cast inside the window and verify both the response and the tally.
	fx.now = fx.now.Add(90 * time.Minute)
	w = doJSON(t, fx.router, http.MethodPost, "/vote", models.CastVoteRequest{
		ElectionID: 1, CandidateID: 1,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, fx.router, http.MethodGet, "/elections/1/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total_votes"])

	// Second ballot from the same principal is rejected.
	w = doJSON(t, fx.router, http.MethodPost, "/vote", models.CastVoteRequest{
		ElectionID: 1, CandidateID: 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrCodeAlreadyVoted, decodeResponse(t, w).Error.Code)
}

func TestBatchRegisterReportsSkipped(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/voters/batch", asPrincipal(deployer), BatchRegisterVoters(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/voters/batch", models.BatchRegisterVotersRequest{
		Principals: []string{voter1.Hex(), stranger.Hex(), voter1.Hex()},
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), data["requested"])
	assert.Equal(t, float64(2), data["registered"])
	assert.Equal(t, float64(1), data["skipped"])
}

func TestBatchRegisterRejectsMalformedAddress(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/voters/batch", asPrincipal(deployer), BatchRegisterVoters(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/voters/batch", models.BatchRegisterVotersRequest{
		Principals: []string{voter1.Hex(), "not-an-address"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeInvalidRequest, decodeResponse(t, w).Error.Code)
}

func TestPauseBlocksMutations(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/pause", asPrincipal(deployer), PauseSystem(fx.services))
	fx.router.POST("/candidates", asPrincipal(deployer), AddCandidate(fx.services))
	fx.router.POST("/unpause", asPrincipal(deployer), UnpauseSystem(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/pause", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, fx.router, http.MethodPost, "/candidates", models.AddCandidateRequest{
		Name: "Alice Johnson", Description: "Community representative",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, models.ErrCodeSystemPaused, decodeResponse(t, w).Error.Code)

	w = doJSON(t, fx.router, http.MethodPost, "/unpause", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, fx.router, http.MethodPost, "/candidates", models.AddCandidateRequest{
		Name: "Alice Johnson", Description: "Community representative",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGrantRoleUnknownRole(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/roles/grant", asPrincipal(deployer), GrantRole(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/roles/grant", models.GrantRoleRequest{
		Role:      "overlord",
		Principal: voter1.Hex(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeInvalidRequest, decodeResponse(t, w).Error.Code)
}

func TestRevokeLastAdminRejected(t *testing.T) {
	fx := newFixture(t)
	fx.router.POST("/roles/revoke", asPrincipal(deployer), RevokeRole(fx.services))

	w := doJSON(t, fx.router, http.MethodPost, "/roles/revoke", models.GrantRoleRequest{
		Role:      "administrator",
		Principal: deployer.Hex(),
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrCodeCannotRemoveLastAdmin, decodeResponse(t, w).Error.Code)
}
