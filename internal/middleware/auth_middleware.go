package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminTokenHeader carries the shared admin token.
const AdminTokenHeader = "X-Admin-Token"

// maxTokenBodyBytes bounds how much of a body is read while looking for the token.
const maxTokenBodyBytes = 1 << 20

// AdminGuard rejects requests that do not carry the admin token, either in the
// X-Admin-Token header or as "token" in a JSON body. Rejections use envelopeKey
// ("ok" or "success") so each route family keeps its response shape.
func AdminGuard(verifier services.Verifier, envelopeKey string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if token == "" {
			token = tokenFromBody(c)
		}

		if _, err := verifier.Verify(services.Credentials{Token: token}); err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, models.ErrServiceUnavailable) {
				status = http.StatusInternalServerError
				log.Error().Str("path", c.Request.URL.Path).Msg("admin token not configured")
			}
			c.AbortWithStatusJSON(status, gin.H{
				envelopeKey: false,
				"message":   models.ErrorMessage(err, "Unauthorized"),
			})
			return
		}
		c.Next()
	}
}

// tokenFromBody peeks at up to maxTokenBodyBytes of a JSON body and puts them back
// in front of the unread remainder for the handler.
func tokenFromBody(c *gin.Context) string {
	body := c.Request.Body
	if body == nil || body == http.NoBody {
		return ""
	}
	peeked, err := io.ReadAll(io.LimitReader(body, maxTokenBodyBytes+1))
	c.Request.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(peeked), body), body}
	if err != nil || len(peeked) == 0 || len(peeked) > maxTokenBodyBytes {
		return ""
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(peeked, &payload); err != nil {
		return ""
	}
	return payload.Token
}
