// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByUsername retrieves a single user by their unique username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByIDAndAccessToken retrieves a user matching both id and the
	// currently stored access token. The match must happen in one query so
	// that "fetch user" and "is this token still current" cannot diverge.
	FindByIDAndAccessToken(ctx context.Context, id uint64, accessToken string) (*entity.User, error)

	// Create persists a new user entity and fills in the generated id and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// UpdateTokens overwrites the stored access/refresh token pair
	// unconditionally. Last writer wins; there is no compare-and-swap.
	UpdateTokens(ctx context.Context, id uint64, accessToken, refreshToken string) error
}
