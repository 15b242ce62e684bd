// Package jwtmw issues bearer tokens and authenticates requests that carry them.
package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated user's ID.
const ContextUserID = "userID"

// TokenParser verifies a bearer token and returns the user it was issued to.
type TokenParser interface {
	ParseUserID(token string) (uint, error)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return token, token != ""
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		tokenStr, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		// 2. Tokens are disabled when no secret is configured
		if parser == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer tokens are not enabled"})
			return
		}

		// 3. Parse and verify JWT signature
		userID, err := parser.ParseUserID(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Store the user ID; gin runs the rest of the chain once this returns
		c.Set(ContextUserID, userID)
	}
}
