// Package services defines the business logic for accounts, chats, and
// query turns. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; the
// translation into user-facing messages and HTTP status codes is performed
// at the handler layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrBadCredentialFormat is returned when a signup/login payload fails
	// the credential format rules (name, email, or password pattern).
	ErrBadCredentialFormat = errors.New("incorrect format of credentials")

	// ErrEmailTaken indicates a signup with an already registered email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrUserNotFound indicates the account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when an identity token cannot be verified
	// or does not resolve to an existing user.
	ErrInvalidToken = errors.New("invalid token")
)

// Chat-related errors.
var (
	// ErrUnauthorized is returned when an operation is attempted without a
	// verified user identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrChatNotFound indicates that the requested chat does not exist.
	ErrChatNotFound = errors.New("chat not found")

	// ErrChatForbidden indicates the chat exists but belongs to a
	// different user.
	ErrChatForbidden = errors.New("chat belongs to another user")

	// ErrNoChats is the distinguished empty-result outcome of a chat
	// listing. It is not a transport failure: callers use it to show an
	// onboarding state instead of an error.
	ErrNoChats = errors.New("no chats yet")

	// ErrEmptyQuery is returned when a submitted query is empty or
	// whitespace-only after trimming.
	ErrEmptyQuery = errors.New("query is empty")
)
