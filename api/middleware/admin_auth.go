package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowsite/auth"
	"flowsite/logger"
)

// AdminAuth verifies the bearer JWT and requires the admin role.
func AdminAuth(jwtMgr *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		subject, role, err := jwtMgr.Parse(token)
		if err != nil {
			logger.Log.Warnf("token parse error: %v", err)
			auth.AbortWithUnauthorized(c, err)
			return
		}

		if role != auth.RoleAdmin {
			logger.Log.Warnf("access denied: subject %s has role %s, want admin", subject, role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden_insufficient_permissions"})
			return
		}

		c.Set("subject", subject)
		c.Set("role", role)

		c.Next()
	}
}
