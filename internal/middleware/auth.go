package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
	// ContextKeyRawToken is the Gin context key for the raw bearer token.
	ContextKeyRawToken = "raw_token"
)

// Claims is the JWT claim set issued by the storefront for logged-in learners.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// OptionalStudentJWT parses a bearer token when one is present and attaches
// the claims to the context. An absent or invalid token does NOT abort the
// request: the exam engine must stay usable for unauthenticated learners,
// who get a temporary identity at submission time instead.
func OptionalStudentJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		c.Set(ContextKeyRawToken, tokenStr)

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Leave the raw token in place so the upstream identity
			// provider can still try to resolve it.
			c.Next()
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context, or nil when the
// request is unauthenticated.
func GetClaims(c *gin.Context) *Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetRawToken retrieves the raw bearer token, or "" when none was sent.
func GetRawToken(c *gin.Context) string {
	val, exists := c.Get(ContextKeyRawToken)
	if !exists {
		return ""
	}
	token, _ := val.(string)
	return token
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	// Fallback for WebSocket upgrades which cannot send headers.
	return c.Query("token")
}
