package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// PaymentAPIKeyAuth authenticates the payment gateway by its
// "Authorization: Apikey <key>" header.
func PaymentAPIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		scheme, key, found := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
		if apiKey == "" || !found || !strings.EqualFold(scheme, "Apikey") ||
			subtle.ConstantTimeCompare([]byte(strings.TrimSpace(key)), []byte(apiKey)) != 1 {
			logger.Warn("Payment webhook rejected: bad API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Set("authMethod", "payment_api_key")
		c.Next()
	}
}
