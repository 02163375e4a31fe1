package domain

import (
	"context"
	"time"
)

// User is an account allowed to use the calendar.
// swagger:model User
type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Name         *string `json:"name"`
}

// NewUser returns an unsaved user. ID is set by the repository on create.
func NewUser(email, passwordHash string, name *string) *User {
	return &User{Email: email, PasswordHash: passwordHash, Name: name}
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository stores accounts. Users are never updated or deleted here.
type UserRepository interface {
	// CreateIfAbsent inserts u unless its email exists; created is false on the no-op path.
	CreateIfAbsent(ctx context.Context, u *User) (created bool, err error)
	GetByEmail(ctx context.Context, email string) (user *User, found bool, err error)
}

// AuthService authenticates users.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// BootstrapService prepares a fresh store for first use. Both procedures are idempotent.
type BootstrapService interface {
	EnsureDefaultUsers(ctx context.Context) error
	Seed(ctx context.Context) error
}
