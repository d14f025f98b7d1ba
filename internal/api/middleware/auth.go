package middleware

import (
	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests whose session carries no identity.
func RequireAuth(manager *service.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := manager.RequireAuthenticated(GetSession(c)); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}
