package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/integration/entrypoint/dto"
)

// CronSecretHeader carries the shared secret of job triggers.
const CronSecretHeader = "X-Cron-Secret"

// RequireCronSecret rejects requests whose X-Cron-Secret header does not match secret.
// An empty secret disables the check.
func RequireCronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(CronSecretHeader)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Unauthorized",
				Code:  string(domainerror.ErrCodeInvalidCronSecret),
			})
			return
		}

		c.Next()
	}
}
