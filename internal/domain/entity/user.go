// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"market/internal/domain/reputation"

	"github.com/google/uuid"
)

// UserStatus represents the account standing of a user.
type UserStatus string

const (
	// UserStatusActive is the normal standing; the account may transact.
	UserStatusActive UserStatus = "active"
	// UserStatusBanned is set by moderation; the account may not transact.
	UserStatusBanned UserStatus = "banned"
	// UserStatusDeleted marks an account removed at its owner's request.
	UserStatusDeleted UserStatus = "deleted"
)

// User is the core identity in the system. A single account may act as
// buyer, seller, or both; the held roles decide which operations it may
// perform.
type User struct {
	ID           uuid.UUID  `json:"id"`         // The Global Unique Identifier (GUID) for the user.
	Username     string     `json:"username"`   // Unique login name, also shown on listings and reviews.
	Email        string     `json:"email"`      // The user's primary contact email.
	PasswordHash string     `json:"-"`          // Salted credential hash; never serialized to clients.
	Roles        Roles      `json:"roles"`      // The set of roles this account holds.
	Status       UserStatus `json:"status"`     // Account standing; only active accounts transact.
	Reputation   int        `json:"reputation"` // Integer score in [0,200], starts at 100.
	CreatedAt    time.Time  `json:"created_at"` // Timestamp of when this account was created.
	UpdatedAt    time.Time  `json:"updated_at"` // Timestamp of the last modification to this account.
}

// NewUser constructs an active user with the initial reputation score.
func NewUser(username, email, passwordHash string, roles Roles) *User {
	now := time.Now()

	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        roles,
		Status:       UserStatusActive,
		Reputation:   reputation.Initial,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CanTransact reports whether the account standing permits marketplace
// operations. Banned and deleted accounts are rejected before any lifecycle
// transition runs.
func (u *User) CanTransact() bool {
	return u.Status == UserStatusActive
}

// IncreaseReputation raises the score by delta, clamped to the upper bound.
func (u *User) IncreaseReputation(delta int) {
	u.Reputation = reputation.Clamp(u.Reputation + delta)
	u.UpdatedAt = time.Now()
}

// DecreaseReputation lowers the score by delta, clamped to the lower bound.
func (u *User) DecreaseReputation(delta int) {
	u.Reputation = reputation.Clamp(u.Reputation - delta)
	u.UpdatedAt = time.Now()
}

// AdjustReputation applies a signed delta through the clamping rules.
func (u *User) AdjustReputation(delta int) {
	if delta >= 0 {
		u.IncreaseReputation(delta)
		return
	}
	u.DecreaseReputation(-delta)
}
