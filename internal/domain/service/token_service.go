package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenPayload is the decoded content of a token this service issued.
// Access tokens carry the user id; refresh tokens carry an empty payload,
// only the registered claims.
type TokenPayload struct {
	UserID uint64 `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying the two token
// classes. The classes differ only in which secret/expiration/issuer
// configuration signs them.
type TokenService interface {
	// IssueAccessToken signs a short-lived token carrying the user id.
	IssueAccessToken(userID uint64) (string, error)

	// IssueRefreshToken signs a longer-lived token with an empty payload.
	IssueRefreshToken() (string, error)

	// IsTokenAlive verifies a refresh token. Every verification failure
	// (bad signature, expired, malformed, wrong issuer) collapses to false;
	// callers must not be able to distinguish the causes.
	IsTokenAlive(tokenString string) (*TokenPayload, bool)

	// ParseAccessToken verifies an access token and returns its payload.
	// Used by the transport layer to guard protected routes.
	ParseAccessToken(tokenString string) (*TokenPayload, error)
}
