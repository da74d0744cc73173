package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/utils"
)

const (
	authHeaderName = "x-auth-token"
	userIDKey      = "user_id"
)

// AuthRequired gates private routes. The token travels in the x-auth-token
// header; a missing or invalid token rejects the request before any handler
// runs.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(authHeaderName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) (int, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(int)
	return userID, ok
}
