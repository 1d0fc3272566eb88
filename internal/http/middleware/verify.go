package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
)

// VerifySlackSignature authenticates requests with the v0 HMAC
// signature. The raw body is restored for downstream form binding.
// An empty signing secret disables verification (local development).
func VerifySlackSignature(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if signingSecret == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		timestamp := c.GetHeader("X-Slack-Request-Timestamp")
		signature := c.GetHeader("X-Slack-Signature")
		if timestamp == "" || signature == "" ||
			!slack.VerifySignature(signingSecret, timestamp, string(body), signature, time.Now()) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
