package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"gatekeeper/config"
	"gatekeeper/internal/domain/service"
)

// tokenConfig is the immutable signing policy for one token class. Both
// classes are built once at construction; nothing re-reads configuration
// per call.
type tokenConfig struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	access  tokenConfig // Short-lived class, payload carries the user id.
	refresh tokenConfig // Long-lived class, empty payload.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		access: tokenConfig{
			secret: []byte(cfg.JWT.AccessSecret),
			ttl:    cfg.JWT.AccessExpiration,
			issuer: cfg.JWT.Issuer,
		},
		refresh: tokenConfig{
			secret: []byte(cfg.JWT.RefreshSecret),
			ttl:    cfg.JWT.RefreshExpiration,
			issuer: cfg.JWT.Issuer,
		},
	}, nil
}

// IssueAccessToken signs a token carrying the user id with the access class policy.
func (s *jwtService) IssueAccessToken(userID uint64) (string, error) {
	return signToken(&s.access, userID)
}

// IssueRefreshToken signs an empty-payload token with the refresh class policy.
func (s *jwtService) IssueRefreshToken() (string, error) {
	return signToken(&s.refresh, 0)
}

// IsTokenAlive verifies a refresh token against the refresh class policy.
// Bad signature, expiry, malformed input and issuer mismatch all collapse to
// a single false result so callers cannot tell the causes apart.
func (s *jwtService) IsTokenAlive(tokenString string) (*service.TokenPayload, bool) {
	payload, err := parseToken(&s.refresh, tokenString)
	if err != nil {
		return nil, false
	}

	return payload, true
}

// ParseAccessToken verifies an access token and returns its payload.
func (s *jwtService) ParseAccessToken(tokenString string) (*service.TokenPayload, error) {
	payload, err := parseToken(&s.access, tokenString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse access token")
	}

	return payload, nil
}

// signToken creates a JWT under the given class policy. Signing with a valid
// secret does not fail in practice; the error return exists for the jwt API.
func signToken(cfg *tokenConfig, userID uint64) (string, error) {
	now := time.Now()
	claims := &service.TokenPayload{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ttl)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(cfg.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// parseToken verifies signature, expiration and issuer under one class policy.
func parseToken(cfg *tokenConfig, tokenString string) (*service.TokenPayload, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.issuer))
	}

	payload := &service.TokenPayload{}
	token, err := jwt.ParseWithClaims(tokenString, payload, func(token *jwt.Token) (any, error) {
		return cfg.secret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return payload, nil
}
