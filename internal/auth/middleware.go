package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// RoleAdmin may regenerate any order's invoice; everyone else only their own.
const RoleAdmin = "admin"

// gin context keys set by Middleware
const (
	ctxUserID = "userId"
	ctxRole   = "role"
	ctxEmail  = "email"
)

// Middleware authenticates the request from a Bearer JWT. Unauthenticated
// requests are rejected before any handler runs; on success the caller's
// id and role are placed in the gin context.
func Middleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			abortUnauthenticated(c, "missing bearer token")
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthenticated(c, "invalid token claims")
			return
		}
		userID, _ := claims[ctxUserID].(string)
		if userID == "" {
			abortUnauthenticated(c, "token has no subject")
			return
		}
		role, _ := claims[ctxRole].(string)
		email, _ := claims[ctxEmail].(string)

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, role)
		c.Set(ctxEmail, email)
		c.Next()
	}
}

// Identity returns the authenticated caller's id and role.
func Identity(c *gin.Context) (userID, role string) {
	return c.GetString(ctxUserID), c.GetString(ctxRole)
}

// Email returns the authenticated caller's email claim, if any.
func Email(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"code": "unauthenticated", "message": msg},
	})
}
