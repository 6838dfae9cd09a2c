package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jobscout/models"
)

// APIKeyContextKey is where Auth stores the accepted key on the gin context.
const APIKeyContextKey = "api_key"

// Auth returns API-key authentication middleware for the search API.
//
// Accepted headers, checked in order:
//
//	X-API-Key: <key>
//	Authorization: Bearer <key>
//
// Keys are compared in constant time. Blank entries in apiKeys are ignored;
// if none remain the middleware lets every request through.
func Auth(apiKeys []string) gin.HandlerFunc {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}
	if len(keys) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		presented := requestAPIKey(c)
		if presented == "" {
			abortUnauthorized(c, "missing API key: provide X-API-Key header or Authorization: Bearer <key>")
			return
		}
		if !knownKey(keys, []byte(presented)) {
			abortUnauthorized(c, "invalid API key")
			return
		}

		c.Set(APIKeyContextKey, presented)
		c.Next()
	}
}

func knownKey(keys [][]byte, presented []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, presented)
	}
	return found == 1
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.SearchResponse{
		Success:  false,
		Listings: []models.JobListing{},
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeUnauthorized,
			Message: msg,
		},
	})
}

// requestAPIKey reads X-API-Key first, then a Bearer token.
func requestAPIKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader("X-API-Key")); key != "" {
		return key
	}
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
