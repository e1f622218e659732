package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
)

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if userID := c.GetString(ctxUserID); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		logger.Info("HTTP request", fields...)
	}
}

// authMiddleware validates the bearer token and stores its claims in the
// context. With auth.enforce off, requests without a valid token pass through
// anonymously.
func (g *Gateway) authMiddleware() gin.HandlerFunc {
	enforce := g.config.Auth.Enforce
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if header == "" || !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			if enforce {
				abortUnauthorized(c, "missing bearer token")
				return
			}
			c.Next()
			return
		}

		claims, err := g.services.Auth.VerifyToken(token)
		if err != nil {
			if enforce {
				g.logger.Debug("Rejected token", zap.Error(err))
				abortUnauthorized(c, "invalid or expired token")
				return
			}
			c.Next()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="punkfits"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "code": "UNAUTHORIZED"})
}

// currentUser is the authenticated user id, or "" for anonymous requests.
func currentUser(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
