// Package domain defines the persistence models for users, chats, and
// messages. These types are mapped with GORM and form the core data layer
// of the lab-report assistant backend.
package domain

import (
	"strings"
	"time"
)

// Message roles. Every persisted message carries exactly one of these two
// values; anything else is rejected (or folded) at the boundary by
// NormalizeRole.
const (
	RoleUser = "User"
	RoleAI   = "AI"
)

// User represents a registered account. The password column holds a bcrypt
// hash, never plaintext, and is excluded from JSON serialization.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name, validated at signup.
//   - Email: unique login identifier.
//   - Password: bcrypt hash of the credential.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(64);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Password  string    `json:"-"          gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Chat represents a conversation thread owned by exactly one user.
// Ownership is immutable after creation; a chat is mutated only through
// its collection of messages.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: identifier of the chat owner; indexed for listing.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - User: FK association, guarantees the owner exists at creation.
type Chat struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"userId"    gorm:"type:char(36);not null;index:idx_user_chats"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Chat.
func (Chat) TableName() string { return "chats" }

// Message represents a single turn inside a chat, authored either by the
// user ("User") or by the model ("AI"). Messages are immutable after
// creation; a transcript is always read back ascending by CreatedAt.
type Message struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	ChatID    string    `json:"chatId"    gorm:"type:char(36);not null;index:idx_chat_msgs,priority:1"`
	Role      string    `json:"role"      gorm:"type:varchar(8);not null;check:role IN ('User','AI')"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_chat_msgs,priority:2"`
	UpdatedAt time.Time `json:"-"`

	// Chat is the parent conversation. Messages are cascade-deleted
	// if their chat is removed.
	Chat Chat `json:"-" gorm:"foreignKey:ChatID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// NormalizeRole folds the role spellings seen in the wild ("user", "USER",
// "ai", "assistant", "model") into the fixed two-variant enumeration and
// reports whether the input was recognizable. Unknown values return
// ("", false) and must be rejected by the caller.
func NormalizeRole(role string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "user":
		return RoleUser, true
	case "ai", "assistant", "model":
		return RoleAI, true
	default:
		return "", false
	}
}

// ChatSummary is the projection returned by chat listings: just the thread
// identifier and its creation time, newest first.
type ChatSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
