// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Username   string
	Password   string
	Name       string
	Email      string
	ProfileURL string
}

// --- Output DTOs ---

// SignupOutput returns the newly created user's id.
type SignupOutput struct {
	ID uint64 `json:"id"`
}

// SessionOutput is returned by login and refresh. It carries exactly the
// fields a client may see: never the refresh token, never the password hash.
type SessionOutput struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Signup creates a new account. Fails with the username-taken conflict
	// error when the username already exists; no record is written then.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// ValidateCredentials checks a username/password pair. On success it
	// returns the user with the password hash stripped. Absent user and
	// wrong password both return (nil, nil): the two cases must stay
	// observationally identical so account existence cannot leak. A non-nil
	// error means the store itself failed, not that validation failed.
	ValidateCredentials(ctx context.Context, username, password string) (*entity.User, error)

	// Login mints a fresh access/refresh token pair for an already-validated
	// username and persists both onto the user record, replacing the prior
	// pair. Callers must have run ValidateCredentials first.
	Login(ctx context.Context, username string) (*SessionOutput, error)

	// Refresh exchanges a current access token for a new one. The stored
	// refresh token is checked for aliveness but not rotated.
	Refresh(ctx context.Context, id uint64, accessToken string) (*SessionOutput, error)
}
