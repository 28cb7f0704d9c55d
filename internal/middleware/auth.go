package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/service/superadmin"
	"github.com/charllys777/appsaloes/pkg/auth"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

type AuthMiddleware struct {
	jwt        auth.JWTService
	superadmin *superadmin.Service
}

func NewAuthMiddleware(jwt auth.JWTService, sa *superadmin.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, superadmin: sa}
}

// Authenticate verifies the Bearer token and puts the account identity
// in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// RequireSuperAdmin gates the platform console. The privilege check
// fails closed, so a slow database turns into a 403 here.
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
			c.Abort()
			return
		}
		if !m.superadmin.IsSuperAdmin(c.Request.Context(), userID, c.GetString(ContextUserEmail)) {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "super admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID reads the authenticated account ID set by Authenticate.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
