package api

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"

	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
	"github.com/aryanpatil97/Blockchain-Voting/internal/database/repositories"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/config"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/logger"
)

// Services contains all the dependencies for API handlers
type Services struct {
	system *contract.VotingSystem
	db     *sql.DB
	logger *logger.Logger
	config *config.Config

	eventRepository *repositories.EventRepository

	// audit recorder lifecycle
	cancelEvents func()
	recorderDone chan struct{}
}

// NewServices creates a new services container
func NewServices(system *contract.VotingSystem, db *sql.DB, log *logger.Logger, cfg *config.Config) *Services {
	return &Services{
		system:          system,
		db:              db,
		logger:          log,
		config:          cfg,
		eventRepository: repositories.NewEventRepository(db, cfg.Database.Type),
	}
}

// Start subscribes the audit recorder to the ledger's fact stream. Every
// committed fact is persisted append-only; a persistence failure is logged
// but never blocks the ledger.
func (s *Services) Start() error {
	s.logger.Info("Starting API services...")

	events, cancel := s.system.SubscribeEvents(256)
	s.cancelEvents = cancel
	s.recorderDone = make(chan struct{})

	go func() {
		defer close(s.recorderDone)
		for ev := range events {
			if err := s.eventRepository.InsertEvent(ev); err != nil {
				s.logger.Error("Failed to persist audit event %s: %v", ev.ID, err)
				continue
			}
			s.logger.LedgerLogger(string(ev.Type), ev.Actor.Hex(), ev.Details)
		}
	}()

	s.logger.Info("All API services started successfully")
	return nil
}

// Stop detaches the audit recorder and waits for it to drain.
func (s *Services) Stop() {
	s.logger.Info("Stopping API services...")
	if s.cancelEvents != nil {
		s.cancelEvents()
		<-s.recorderDone
	}
	s.logger.Info("All API services stopped")
}

// IsHealthy checks if all critical services are healthy
func (s *Services) IsHealthy() bool {
	if err := s.db.Ping(); err != nil {
		s.logger.Error("Database health check failed: %v", err)
		return false
	}
	return true
}

// Interface implementation methods
func (s *Services) System() *contract.VotingSystem {
	return s.system
}

func (s *Services) GetLogger() *logger.Logger {
	return s.logger
}

func (s *Services) GetConfig() *config.Config {
	return s.config
}

func (s *Services) GetDB() *sql.DB {
	return s.db
}

func (s *Services) EventRepository() *repositories.EventRepository {
	return s.eventRepository
}

// IssueToken mints a session token binding the given principal. The token
// proves nothing about key ownership; the wallet flow that would do so sits
// outside this service.
func (s *Services) IssueToken(principal common.Address) (string, int64, error) {
	expiration := s.config.Security.JWTExpiration
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"principal": principal.Hex(),
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(expiration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Security.JWTSecret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %v", err)
	}
	return signed, int64(expiration.Seconds()), nil
}

// ValidateToken verifies a session token and returns the bound principal.
func (s *Services) ValidateToken(token string) (common.Address, error) {
	token = strings.TrimPrefix(token, "Bearer ")

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		secretKey := s.config.Security.JWTSecret
		if secretKey == "" {
			return nil, errors.New("JWT secret key not configured")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid token: %v", err)
	}
	if !parsedToken.Valid {
		return common.Address{}, errors.New("invalid token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return common.Address{}, errors.New("invalid token claims")
	}

	principalHex, ok := claims["principal"].(string)
	if !ok {
		return common.Address{}, errors.New("missing principal claim")
	}
	if !common.IsHexAddress(principalHex) {
		return common.Address{}, errors.New("malformed principal claim")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return common.Address{}, errors.New("missing expiration claim")
	}
	if time.Now().Unix() > int64(exp) {
		return common.Address{}, errors.New("token has expired")
	}

	return common.HexToAddress(principalHex), nil
}
