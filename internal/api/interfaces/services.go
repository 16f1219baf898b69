package interfaces

import (
	"database/sql"

	"github.com/ethereum/go-ethereum/common"

	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
	"github.com/aryanpatil97/Blockchain-Voting/internal/database/repositories"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/config"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/logger"
)

// Services is the dependency surface handlers and middlewares consume. Kept
// as an interface so handler tests can run against a trimmed implementation.
type Services interface {
	System() *contract.VotingSystem
	GetLogger() *logger.Logger
	GetConfig() *config.Config
	GetDB() *sql.DB
	EventRepository() *repositories.EventRepository

	// IsHealthy reports whether the service's critical dependencies respond.
	IsHealthy() bool

	// IssueToken mints a session token binding the given principal.
	IssueToken(principal common.Address) (token string, expiresIn int64, err error)
	// ValidateToken verifies a session token and returns the bound principal.
	ValidateToken(token string) (common.Address, error)
}
