package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"gardenshop/internal/domain"
	"gardenshop/internal/identity"
	"gardenshop/internal/shopapi"
	"github.com/gin-gonic/gin"
)

const (
	userCtxKey = "gardenshop.user"
)

// authMiddleware resolves the bearer token to the current customer and
// stashes both the user and the token on the request, so upstream calls made
// on this request's behalf relay the same token.
func authMiddleware(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "authentication service unavailable"})
			return
		}

		c.Set(userCtxKey, user)
		c.Request = c.Request.WithContext(shopapi.WithToken(c.Request.Context(), token))
		c.Next()
	}
}

func currentUser(c *gin.Context) *identity.User {
	if v, ok := c.Get(userCtxKey); ok {
		if user, ok := v.(*identity.User); ok {
			return user
		}
	}
	return nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
