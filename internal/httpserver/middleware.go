package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foodcourt/internal/domain"
	"foodcourt/internal/session"
)

const sessionCtxKey = "foodcourt.session"

// sessionMiddleware resolves the bearer token into an active session.
// Missing or expired tokens get a 401 so the client can redirect to
// login.
func sessionMiddleware(store SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}
		sess, ok := store.Lookup(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}
		c.Set(sessionCtxKey, sess)
		c.Next()
	}
}

// adminMiddleware rejects non-admin sessions. Must run after
// sessionMiddleware.
func adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess == nil || sess.Role() != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
