package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/smartxerox/internal/pkg/auth"
	"github.com/polkiloo/smartxerox/internal/server/http/dto"
)

const (
	// ClaimsContextKey is a gin context key for authenticated token claims.
	ClaimsContextKey = "claims"
	authCookieName   = "smartxerox_token"
)

// TokenParser validates bearer tokens.
type TokenParser interface {
	ParseToken(token string) (*pkgAuth.Claims, error)
}

// AuthRequired ensures the request carries a valid token before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Access token required"))
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid or expired token"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Internal server error"))
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// AdminRequired rejects requests whose token is not an admin token.
// It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != pkgAuth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Admin access required"))
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns claims stored by AuthRequired.
func ClaimsFrom(c *gin.Context) (*pkgAuth.Claims, bool) {
	val, ok := c.Get(ClaimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*pkgAuth.Claims)
	return claims, ok && claims != nil
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(authCookieName, token, maxAge, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
