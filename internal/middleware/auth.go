package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shivanisinghay/Epsilon/internal/security"
)

const claimsContextKey = "auth_claims"

// Auth guards protected routes. Token validity is determined purely by
// signature and expiry; nothing is looked up server-side.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token, authorization denied"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token format is invalid, authorization denied"})
			return
		}

		claims, err := security.ParseToken(parts[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is not valid"})
			return
		}

		c.Set(claimsContextKey, *claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified identity claims attached by Auth.
func ClaimsFrom(c *gin.Context) (security.Claims, bool) {
	val, exists := c.Get(claimsContextKey)
	if !exists {
		return security.Claims{}, false
	}
	claims, ok := val.(security.Claims)
	return claims, ok
}
