package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/common"
)

// writeError translates the service error taxonomy into the JSON error
// bodies and status codes of the public API. Everything unrecognized is a
// 500; nothing propagates past the request boundary.
func writeError(c *gin.Context, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": ve.Violations})
		return
	}

	switch {
	case errors.Is(err, common.ErrUsernameTaken):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrInvalidPassword):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNoToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotReady):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func writeBadBody(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
}
