package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/takeyours/takeyours-backend/internal/usecase/auth"
)

// ContextEmail and ContextAdminID are the gin context keys the middleware
// sets for downstream handlers.
const (
	ContextEmail   = "email"
	ContextAdminID = "admin_id"
)

type AuthMiddleware struct {
	tokens *auth.TokenService
}

func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireUser accepts requests carrying a valid user token and exposes the
// token's email to handlers.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseBearer(c)
		if !ok {
			return
		}
		if claims.Email == "" || claims.Role == auth.RoleAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user token required"})
			c.Abort()
			return
		}
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// RequireAdmin accepts requests carrying a valid admin-role token.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseBearer(c)
		if !ok {
			return
		}
		if claims.Role != auth.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Set(ContextAdminID, claims.AdminID)
		c.Next()
	}
}

func (m *AuthMiddleware) parseBearer(c *gin.Context) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
		c.Abort()
		return nil, false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
		c.Abort()
		return nil, false
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		c.Abort()
		return nil, false
	}
	return claims, true
}
