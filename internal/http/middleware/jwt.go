package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/db"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// Admin sessions outlive a working day but not a forgotten browser tab.
const sessionTTL = 72 * time.Hour

const currentUserKey = "currentUser"

// GenerateJWT issues an HS256 session token with the user ID in "sub".
func GenerateJWT(userID int, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(sessionTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// sessionUserID verifies a token and extracts the user ID it was issued to.
func sessionUserID(tokenString, secret string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("invalid sub claim")
	}
	return int(sub), nil
}

// JWTMiddleware gates a route group on "Authorization: Bearer <token>".
// The token's user is loaded fresh on every request, so a deleted account
// loses access immediately, and stashed in the gin context for handlers.
func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		userID, err := sessionUserID(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := db.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}
