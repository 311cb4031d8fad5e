package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yatinsingh2007/ReportLens-AI/internal/domain"
	"github.com/yatinsingh2007/ReportLens-AI/internal/http/middleware"
	"github.com/yatinsingh2007/ReportLens-AI/internal/services"
)

// fakeAuthService scripts the identity operations for handler tests.
type fakeAuthService struct {
	signupErr error
	loginUser *domain.User
	loginTok  string
	loginErr  error
}

func (f *fakeAuthService) Signup(_ context.Context, _, _, _ string) (*domain.User, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &domain.User{ID: "u1"}, nil
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return f.loginUser, f.loginTok, f.loginErr
}

func newAuthTestRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, nil)
	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/logout", h.Logout)
	r.GET("/me", func(c *gin.Context) {
		// simulate RequireAuth having resolved the user
		c.Set(middleware.UserKey, &domain.User{ID: "u1", Name: "Alice Smith", Email: "alice@example.com"})
		h.Me(c)
	})
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignupHandler(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{"created", `{"name":"Alice Smith","email":"alice@example.com","password":"Passw0rdX"}`, nil, http.StatusCreated},
		{"malformed json", `{"email":`, nil, http.StatusBadRequest},
		{"missing fields", `{"name":"Alice Smith"}`, nil, http.StatusBadRequest},
		{"bad format", `{"name":"Alice Smith","email":"alice@example.com","password":"x"}`, services.ErrBadCredentialFormat, http.StatusBadRequest},
		{"email taken", `{"name":"Alice Smith","email":"alice@example.com","password":"Passw0rdX"}`, services.ErrEmailTaken, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthTestRouter(&fakeAuthService{signupErr: tc.svcErr})
			w := postJSON(r, "/api/auth/signup", tc.body)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestLoginHandler_SetsCookie(t *testing.T) {
	r := newAuthTestRouter(&fakeAuthService{
		loginUser: &domain.User{ID: "u1"},
		loginTok:  "signed.jwt.token",
	})

	w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"Passw0rdX"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var tokenCookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.TokenCookie {
			tokenCookie = ck
		}
	}
	if tokenCookie == nil {
		t.Fatalf("token cookie not set")
	}
	if tokenCookie.Value != "signed.jwt.token" {
		t.Fatalf("cookie value = %q", tokenCookie.Value)
	}
	if !tokenCookie.HttpOnly {
		t.Fatalf("token cookie must be httpOnly")
	}
}

func TestLoginHandler_Failures(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown user", services.ErrUserNotFound, http.StatusNotFound},
		{"wrong password", services.ErrInvalidCredentials, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthTestRouter(&fakeAuthService{loginErr: tc.err})
			w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"Passw0rdX"}`)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			// no cookie on failure
			for _, ck := range w.Result().Cookies() {
				if ck.Name == middleware.TokenCookie && ck.Value != "" {
					t.Fatalf("token cookie set on failed login")
				}
			}
		})
	}
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	r := newAuthTestRouter(&fakeAuthService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var cleared bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.TokenCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("token cookie not cleared")
	}
}

func TestMeHandler(t *testing.T) {
	r := newAuthTestRouter(&fakeAuthService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		User UserResponse `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.User.ID != "u1" || body.User.Email != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", body.User)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password surfaced in /me response")
	}
}
