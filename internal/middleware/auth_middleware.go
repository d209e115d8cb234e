package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campustix/campustix/internal/helpers"
	"github.com/campustix/campustix/internal/services"
)

const claimsKey = "claims"

// JWTAuthMiddleware validates the Bearer access token and stashes the decoded
// claims in the gin context. Missing or invalid tokens are 401; role failures
// are 403 and belong to RequireRoles, so clients can tell "log in again" from
// "access denied".
func JWTAuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing authorization header.")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Invalid authorization format.")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccess(strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRoles gates a route group on the token-carried role.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthenticated, "Missing token claims.")
			c.Abort()
			return
		}
		if err := services.RequireRole(claims, roles...); err != nil {
			helpers.RespondWithError(c, http.StatusForbidden, helpers.CodeForbidden, "You don't have permission to access this resource.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetClaims(c *gin.Context) (*services.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok
}
