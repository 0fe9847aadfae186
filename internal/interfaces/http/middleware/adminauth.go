package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/utils"
)

// AdminAuth guards the admin endpoints with a static bearer token. The
// admin surface is a single back-office page; a shared token is the whole
// user model.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("admin access is not configured"))
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid admin token"))
			c.Abort()
			return
		}

		c.Next()
	}
}
