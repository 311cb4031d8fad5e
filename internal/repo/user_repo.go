// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// Error semantics:
//   - When a user is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - A duplicate email on insert is translated to ErrDuplicateEmail so the
//     service layer can surface a Conflict without parsing driver strings
//     anywhere else.
//   - On other DB errors, the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yatinsingh2007/ReportLens-AI/internal/domain"
)

// ErrDuplicateEmail is returned when an insert violates the unique email
// constraint on the users table.
var ErrDuplicateEmail = errors.New("email already registered")

// CreateUser inserts a new User row with a bcrypt password hash. The id is
// a randomly generated UUID and CreatedAt is set to UTC.
//
// A unique-constraint violation on the email column is returned as
// ErrDuplicateEmail; any other DB error is propagated as-is.
func CreateUser(ctx context.Context, db *gorm.DB, name, email, passwordHash string) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// FindUserByEmail fetches a user by email, or ErrNotFound if missing.
func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByID fetches a user by primary key, or ErrNotFound if missing.
func FindUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// gorm exposes ErrDuplicatedKey for dialectors with translated errors; the
// sqlite driver surfaces the raw constraint message, so both are checked.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "constraint failed")
}
