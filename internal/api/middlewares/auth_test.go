package middlewares

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
	"github.com/aryanpatil97/Blockchain-Voting/internal/database/repositories"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/config"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/logger"
)

type authStub struct {
	cfg       *config.Config
	principal common.Address
	tokenErr  error
}

func (s *authStub) System() *contract.VotingSystem { return nil }
func (s *authStub) GetLogger() *logger.Logger {
	return logger.NewLogger(logger.Options{Level: "error"})
}
func (s *authStub) GetConfig() *config.Config                      { return s.cfg }
func (s *authStub) GetDB() *sql.DB                                 { return nil }
func (s *authStub) EventRepository() *repositories.EventRepository { return nil }
func (s *authStub) IsHealthy() bool                                { return true }

func (s *authStub) IssueToken(principal common.Address) (string, int64, error) {
	return "token", 3600, nil
}

func (s *authStub) ValidateToken(token string) (common.Address, error) {
	if s.tokenErr != nil {
		return common.Address{}, s.tokenErr
	}
	return s.principal, nil
}

func authRouter(stub *authStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", PrincipalRequired(stub), func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, principal.Hex())
	})
	return router
}

func TestPrincipalRequiredRejectsMissingToken(t *testing.T) {
	router := authRouter(&authStub{cfg: &config.Config{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPrincipalRequiredRejectsInvalidToken(t *testing.T) {
	router := authRouter(&authStub{
		cfg:      &config.Config{},
		tokenErr: errors.New("expired"),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPrincipalRequiredAcceptsBearerToken(t *testing.T) {
	principal := common.HexToAddress("0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b")
	router := authRouter(&authStub{cfg: &config.Config{}, principal: principal})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, principal.Hex(), w.Body.String())
}

func TestPrincipalRequiredDevHeader(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.DevPrincipalHeader = true
	router := authRouter(&authStub{cfg: cfg})

	principal := common.HexToAddress("0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Principal", principal.Hex())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, principal.Hex(), w.Body.String())
}

func TestPrincipalRequiredDevHeaderDisabledByDefault(t *testing.T) {
	router := authRouter(&authStub{cfg: &config.Config{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Principal", "0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
