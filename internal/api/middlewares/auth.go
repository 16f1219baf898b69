package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/interfaces"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
)

// PrincipalKey is the context key carrying the authenticated caller address.
const PrincipalKey = "principal"

// PrincipalRequired resolves the caller's principal address for mutating
// endpoints. It accepts a Bearer session token, or, when the dev header is
// enabled in config, a raw X-Principal address header.
func PrincipalRequired(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if services.GetConfig().Security.DevPrincipalHeader {
			if raw := c.GetHeader("X-Principal"); raw != "" {
				if !common.IsHexAddress(raw) {
					abortUnauthorized(c, models.ErrCodeUnauthorized, "X-Principal is not a valid address")
					return
				}
				c.Set(PrincipalKey, common.HexToAddress(raw))
				c.Next()
				return
			}
		}

		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, models.ErrCodeUnauthorized, "Authorization token required")
			return
		}

		principal, err := services.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, models.ErrCodeInvalidToken, "Invalid or expired token: "+err.Error())
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// WSPrincipalRequired authenticates WebSocket upgrades. Browsers cannot set
// an Authorization header on the upgrade request, so the token rides in the
// query string.
func WSPrincipalRequired(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" && services.GetConfig().Security.DevPrincipalHeader {
			if raw := c.Query("principal"); raw != "" && common.IsHexAddress(raw) {
				c.Set(PrincipalKey, common.HexToAddress(raw))
				c.Next()
				return
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required for WebSocket"})
			c.Abort()
			return
		}

		principal, err := services.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// Principal returns the authenticated caller address set by the auth
// middleware. The second return is false on unauthenticated routes.
func Principal(c *gin.Context) (common.Address, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return common.Address{}, false
	}
	addr, ok := v.(common.Address)
	return addr, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.JSON(http.StatusUnauthorized, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().Unix(),
	})
	c.Abort()
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
