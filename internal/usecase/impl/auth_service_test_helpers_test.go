package impl

import (
	"context"
	"io"
	"log/slog"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserRepository is a testify mock for repository.UserRepository.
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByIDAndAccessToken(ctx context.Context, id uint64, accessToken string) (*entity.User, error) {
	args := m.Called(ctx, id, accessToken)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepository) UpdateTokens(ctx context.Context, id uint64, accessToken, refreshToken string) error {
	args := m.Called(ctx, id, accessToken, refreshToken)

	return args.Error(0)
}

// mockPasswordHasher is a testify mock for service.PasswordHasher.
type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// mockTokenService is a testify mock for service.TokenService.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueAccessToken(userID uint64) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IssueRefreshToken() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IsTokenAlive(tokenString string) (*service.TokenPayload, bool) {
	args := m.Called(tokenString)
	if payload, ok := args.Get(0).(*service.TokenPayload); ok {
		return payload, args.Bool(1)
	}

	return nil, args.Bool(1)
}

func (m *mockTokenService) ParseAccessToken(tokenString string) (*service.TokenPayload, error) {
	args := m.Called(tokenString)
	if payload, ok := args.Get(0).(*service.TokenPayload); ok {
		return payload, args.Error(1)
	}

	return nil, args.Error(1)
}

func newTestAuthService(repo *mockUserRepository, hasher *mockPasswordHasher, tokens *mockTokenService) *authService {
	return &authService{
		userRepo:     repo,
		hasher:       hasher,
		tokenService: tokens,
		logger:       newDiscardLogger(),
	}
}
