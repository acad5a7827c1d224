// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User represents a single account. Besides the identity fields it carries
// the last-issued access/refresh token pair; the pair is overwritten
// wholesale on every login and refresh, no token history is retained.
type User struct {
	ID             uint64    // Auto-incremented numeric identifier.
	Username       string    // Login identifier, unique across all users.
	Name           string    // Display name.
	Email          string    // Contact email address.
	ProfileURL     string    // URL of the user's avatar or profile page.
	HashedPassword string    // One-way bcrypt hash of the password. Never exposed outward.
	AccessToken    string    // Serialized form of the current access token.
	RefreshToken   string    // Serialized form of the current refresh token. Never returned to callers.
	CreatedAt      time.Time // Timestamp of when this account was created.
	UpdatedAt      time.Time // Timestamp of the last modification to this account.
}

// WithoutPassword returns a copy of the user with the password hash stripped,
// suitable for handing to callers after credential validation.
func (u *User) WithoutPassword() *User {
	if u == nil {
		return nil
	}

	clone := *u
	clone.HashedPassword = ""

	return &clone
}
