package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "coach_session"

	// UserSessionContextKey is the key used to store the session in the gin context
	UserSessionContextKey = "user_session"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionCookie holds the cookie attributes used when clearing a bad session
type SessionCookie struct {
	Domain string
	Secure bool
}

// UserSessionMiddleware validates the session JWT from the cookie or a Bearer
// header and stores the caller in the context
func UserSessionMiddleware(tokenManager *jwt.TokenManager, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c)
		if token == "" {
			_ = c.Error(fmt.Errorf("missing session token")) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login first"})
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			if fromCookie {
				ClearSessionCookie(c, cookie)
			}

			msg := "Please login first"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Session expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		session := &models.UserSession{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   models.Role(claims.Role),
		}
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Unix()
		}
		if claims.IssuedAt != nil {
			session.IssuedAt = claims.IssuedAt.Unix()
		}

		c.Set(UserSessionContextKey, session)
		c.Next()
	}
}

// sessionToken prefers the cookie and falls back to Authorization: Bearer
func sessionToken(c *gin.Context) (token string, fromCookie bool) {
	if v, err := c.Cookie(SessionCookieName); err == nil && v != "" {
		return v, true
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:]), false
	}
	return "", false
}

// GetUserSession extracts the session from the context
func GetUserSession(c *gin.Context) (*models.UserSession, error) {
	val, exists := c.Get(UserSessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.UserSession)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c *gin.Context, cookie SessionCookie) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		cookie.Domain,
		cookie.Secure,
		true, // HttpOnly
	)
}
