package middleware

import (
	"net/http"
	"strings"

	"backoffice/internal/domain"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// TokenParser verifies a bearer token.
type TokenParser interface {
	ParseToken(token string) (*domain.Actor, error)
}

// RequireOperator rejects requests without a valid bearer token. When
// enabled is false it passes everything through, leaving no actor set.
func RequireOperator(tokens TokenParser, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		actor, err := tokens.ParseToken(raw)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActor returns the operator set by RequireOperator, or nil.
func GetActor(c *gin.Context) *domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(*domain.Actor); ok {
			return a
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="backoffice"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success":    false,
		"message":    msg,
		"request_id": GetRequestID(c),
	})
}
