package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yatinsingh2007/ReportLens-AI/internal/domain"
)

func newUserRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("user_repo_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateUser_InsertsAndReadsBack(t *testing.T) {
	db := newUserRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "Alice Smith", "alice@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" || u.Name != "Alice Smith" || u.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	got, err := FindUserByEmail(ctx, db, "alice@example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if got.ID != u.ID || got.Password != "$2a$10$hash" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}

	byID, err := FindUserByID(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if byID.Email != u.Email {
		t.Fatalf("lookup by id mismatch: %+v", byID)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newUserRepoDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, db, "Alice Smith", "alice@example.com", "h1"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := CreateUser(ctx, db, "Other Alice", "alice@example.com", "h2")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestFindUser_NotFound(t *testing.T) {
	db := newUserRepoDB(t)
	ctx := context.Background()

	if _, err := FindUserByEmail(ctx, db, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound by email, got %v", err)
	}
	if _, err := FindUserByID(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound by id, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{gorm.ErrDuplicatedKey, true},
		{errors.New("UNIQUE constraint failed: users.email"), true},
		{errors.New("constraint failed: something"), true},
		{errors.New("disk I/O error"), false},
	}
	for _, tc := range cases {
		if got := isUniqueViolation(tc.err); got != tc.want {
			t.Errorf("isUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
