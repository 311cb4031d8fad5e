// Auth HTTP handlers.
//
// This file exposes the authentication endpoints:
//   - POST /api/auth/signup
//   - POST /api/auth/login   (sets the httpOnly token cookie)
//   - GET  /api/auth/logout  (clears the cookie)
//   - GET  /me               (current authenticated user)
//
// Handlers are transport-thin: they validate input, call the auth service,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatinsingh2007/ReportLens-AI/internal/domain"
	"github.com/yatinsingh2007/ReportLens-AI/internal/http/middleware"
	"github.com/yatinsingh2007/ReportLens-AI/internal/services"
)

// AuthService defines the identity operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type AuthService interface {
	// Signup validates and registers a new account.
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and issues a signed identity token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// CredentialsRequest is the JSON payload for signup and login.
type CredentialsRequest struct {
	Name     string `json:"name" example:"Alice Smith"`
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// tokenCookieMaxAge is one hour, matching the token TTL default.
const tokenCookieMaxAge = 3600

// Signup godoc
// @ID          signup
// @Summary     Register a new account
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Success     201  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Bad credential format"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /api/auth/signup [post]
func (h *Handlers) Signup(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Incorrect Format of Credentials")
		return
	}

	if _, err := h.authSvc.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrBadCredentialFormat):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Incorrect Format of Credentials")
		case errors.Is(err, services.ErrEmailTaken):
			fail(c, http.StatusConflict, ErrCodeConflict, "User already exists")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "Internal Server Error")
		}
		return
	}
	ok(c, http.StatusCreated, gin.H{"message": "User created successfully"})
}

// Login godoc
// @ID          login
// @Summary     Authenticate and set the identity cookie
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Success     200  {object}  map[string]string
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /api/auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Incorrect Format of Credentials")
		return
	}

	_, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "User not found")
		case errors.Is(err, services.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid credentials")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "Internal server error")
		}
		return
	}

	c.SetCookie(middleware.TokenCookie, token, tokenCookieMaxAge, "/", "", false, true)
	ok(c, http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout godoc
// @ID          logout
// @Summary     Clear the identity cookie
// @Tags        Auth
// @Produce     json
// @Success     200  {object}  map[string]string
// @Router      /api/auth/logout [get]
func (h *Handlers) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	ok(c, http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me godoc
// @ID          me
// @Summary     Current authenticated user
// @Tags        Auth
// @Produce     json
// @Success     200  {object}  map[string]handlers.UserResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /me [get]
func (h *Handlers) Me(c *gin.Context) {
	u := middleware.UserFrom(c)
	if u == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}
	ok(c, http.StatusOK, gin.H{"user": UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}})
}
