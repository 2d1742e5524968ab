package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/triplog/triplog-backend/domain"
)

// IdentityKey is the gin context key the resolved caller identity is
// stored under.
const IdentityKey = "identity"

// parseIdentity validates the bearer token and extracts the caller
// identity from its claims.
func parseIdentity(tokenStr, secret string) (domain.Identity, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Identity{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, false
	}
	uid, ok := claims["user_id"].(float64)
	if !ok || uid < 1 {
		return domain.Identity{}, false
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = string(domain.RoleUser)
	}

	return domain.Identity{UserID: int64(uid), Role: domain.Role(role)}, true
}

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(auth[7:]), true
}

// AuthMiddleware rejects requests without a valid bearer token and sets
// the caller identity for the handlers behind it.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		identity, ok := parseIdentity(tokenStr, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid token is
// present and lets the request through anonymously otherwise. Read
// endpoints use it so liked-by-caller annotation and private-trip
// visibility work for logged-in users without closing the endpoint.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if identity, ok := parseIdentity(tokenStr, secret); ok {
				c.Set(IdentityKey, identity)
			}
		}
		c.Next()
	}
}
