package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusvoice/student-portal/pkg/common"
)

const (
	// UserIDKey is the gin context key holding the authenticated user ID
	UserIDKey = "user_id"
	// BearerTokenKey is the gin context key holding the raw bearer token
	BearerTokenKey = "bearer_token"
)

// ErrNoUserID is returned when the request context has no authenticated user
var ErrNoUserID = errors.New("no authenticated user in context")

// AuthMiddleware validates the bearer token and stores the user identity.
// The raw token is kept in the context so the gateway can forward it to the
// backend unchanged.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			common.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "token has no subject")
			c.Abort()
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			common.ErrorResponse(c, http.StatusUnauthorized, "invalid user ID in token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(BearerTokenKey, tokenStr)
		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from the gin context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, ErrNoUserID
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}

// GetBearerToken extracts the raw bearer token from the gin context
func GetBearerToken(c *gin.Context) string {
	if v, exists := c.Get(BearerTokenKey); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
