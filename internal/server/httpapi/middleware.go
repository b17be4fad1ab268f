package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/common"
	"pocketledger/internal/logging"
	"pocketledger/internal/server/models"
)

const identityKey = "identity"

// requireReady rejects requests with 503 while the persistence connection
// is not established. The gate is evaluated per request, never cached.
func requireReady(ready func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ready() {
			writeError(c, common.ErrNotReady)
			return
		}
		c.Next()
	}
}

// authenticate extracts the bearer token from the Authorization header,
// verifies it and stores the owner identity in the request context. A
// missing token is 401, a failed verification 403.
func authenticate(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			writeError(c, common.ErrNoToken)
			return
		}

		identity, err := users.VerifyToken(tokenStr)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// currentIdentity returns the identity placed by authenticate.
func currentIdentity(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok && identity != nil
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
