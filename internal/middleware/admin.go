package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/handlers"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
)

// AdminIdentityKey is where the gate stores the validated identity on the gin
// context.
const AdminIdentityKey = "adminIdentity"

type AdminMiddleware struct {
	log         *logger.Logger
	authService services.AdminAuthService
}

func NewAdminMiddleware(log *logger.Logger, authService services.AdminAuthService) *AdminMiddleware {
	return &AdminMiddleware{
		log:         log.With("middleware", "AdminMiddleware"),
		authService: authService,
	}
}

// RequireAdmin blocks the request unless it carries a session token whose
// session still exists in redis. Logout revokes server-side, so a stolen
// cookie dies with the session.
func (am *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractSessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
			return
		}
		identity, err := am.authService.Validate(c.Request.Context(), token)
		if err != nil {
			am.log.Warn("admin session rejected", "path", c.FullPath(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired admin session"})
			return
		}
		c.Set(AdminIdentityKey, identity)
		c.Next()
	}
}

// AdminIdentity returns the identity the gate attached, if any.
func AdminIdentity(c *gin.Context) (services.AdminIdentity, bool) {
	v, ok := c.Get(AdminIdentityKey)
	if !ok {
		return services.AdminIdentity{}, false
	}
	identity, ok := v.(services.AdminIdentity)
	return identity, ok
}

func extractSessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(handlers.AdminSessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
