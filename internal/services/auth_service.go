// Package services – AuthService
//
// This file implements the identity side of the backend: signup with
// credential format validation and bcrypt hashing, login with token
// issuing, and token-to-user resolution for the auth middleware. The
// orchestrator itself only ever sees the resolved user id.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yatinsingh2007/ReportLens-AI/internal/domain"
	"github.com/yatinsingh2007/ReportLens-AI/internal/repo"
)

// Credential format rules. Password requires at least one lower, one upper,
// and one digit over 8+ characters.
var (
	nameRE      = regexp.MustCompile(`^[A-Za-z ]{3,30}$`)
	emailRE     = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,}$`)
	passLowerRE = regexp.MustCompile(`[a-z]`)
	passUpperRE = regexp.MustCompile(`[A-Z]`)
	passDigitRE = regexp.MustCompile(`\d`)
)

const bcryptCost = 10

// AuthService manages accounts and identity tokens.
type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{DB: db, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

// Signup validates the credential formats, hashes the password, and creates
// the account. A duplicate email is reported as ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if !validCredentials(name, email, password) {
		return nil, ErrBadCredentialFormat
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	u, err := repo.CreateUser(ctx, s.DB, name, email, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the password against the stored hash and issues a signed
// identity token. Missing accounts and wrong passwords are reported
// distinctly (ErrUserNotFound vs ErrInvalidCredentials) to match the
// API contract.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := repo.FindUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// UserFromToken validates a signed identity token and resolves it to the
// user it names. Any verification failure, and a token whose subject no
// longer exists, surface as ErrInvalidToken.
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	u, err := repo.FindUserByID(ctx, s.DB, sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// issueToken signs an HS256 JWT with the user id as subject.
func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
}

// validCredentials applies the signup format rules to all three fields.
func validCredentials(name, email, password string) bool {
	if !nameRE.MatchString(name) || !emailRE.MatchString(email) {
		return false
	}
	if len(password) < 8 {
		return false
	}
	return passLowerRE.MatchString(password) &&
		passUpperRE.MatchString(password) &&
		passDigitRE.MatchString(password)
}
