// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the cookie-based identity check. Every /api/chat route
// (and /me) runs behind it: the signed token cookie is verified, resolved to
// an existing user row, and the user id is placed in the request context for
// handlers and services. Requests without a valid identity never reach the
// orchestrator.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatinsingh2007/ReportLens-AI/internal/domain"
)

const (
	// TokenCookie is the cookie carrying the signed identity token.
	TokenCookie = "token"

	// UserIDKey / UserKey are the Gin context keys set on success.
	UserIDKey = "userID"
	UserKey   = "user"
)

// TokenVerifier resolves a raw identity token to the user it names.
// services.AuthService satisfies this contract.
type TokenVerifier interface {
	UserFromToken(ctx context.Context, token string) (*domain.User, error)
}

// RequireAuth rejects requests lacking a verifiable identity with 401 and a
// JSON {error} body; otherwise it stores the resolved user in the context
// and continues. The raw token value is never logged.
func RequireAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			unauthorized(c)
			return
		}
		user, err := v.UserFromToken(c.Request.Context(), token)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth, or "".
func UserID(c *gin.Context) string {
	if v, ok := c.Get(UserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// UserFrom returns the authenticated user set by RequireAuth, or nil.
func UserFrom(c *gin.Context) *domain.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":  "unauthorized",
		"error": "Unauthorized",
	})
}
