package impl

import (
	"context"
	"testing"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup_Success(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()

	repo.On("FindByUsername", ctx, "alice").Return(nil, repository.ErrUserNotFound)
	hasher.On("Hash", "pw1").Return("hashed-pw1", nil)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "hashed-pw1", user.HashedPassword)
			user.ID = 1
		}).
		Return(nil)

	output, err := service.Signup(ctx, &usecase.SignupInput{
		Username: "alice",
		Password: "pw1",
		Name:     "Alice",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(1), output.ID)
	repo.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

func TestAuthService_Signup_UsernameTaken(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()
	existing := &entity.User{ID: 1, Username: "alice"}

	repo.On("FindByUsername", ctx, "alice").Return(existing, nil)

	output, err := service.Signup(ctx, &usecase.SignupInput{Username: "alice", Password: "pw1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	assert.Nil(t, output)

	// The conflict must leave the store untouched.
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAuthService_ValidateCredentials_UniformNull(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()

	// Absent user.
	repo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)
	absentUser, absentErr := service.ValidateCredentials(ctx, "ghost", "whatever")

	// Wrong password.
	stored := &entity.User{ID: 1, Username: "alice", HashedPassword: "hashed-pw1"}
	repo.On("FindByUsername", ctx, "alice").Return(stored, nil)
	hasher.On("Check", "wrong", "hashed-pw1").Return(false)
	wrongUser, wrongErr := service.ValidateCredentials(ctx, "alice", "wrong")

	// Both cases must be observationally identical: exactly (nil, nil).
	assert.Nil(t, absentUser)
	assert.NoError(t, absentErr)
	assert.Nil(t, wrongUser)
	assert.NoError(t, wrongErr)
}

func TestAuthService_ValidateCredentials_SuccessStripsPassword(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()
	stored := &entity.User{ID: 1, Username: "alice", HashedPassword: "hashed-pw1", Email: "alice@example.com"}

	repo.On("FindByUsername", ctx, "alice").Return(stored, nil)
	hasher.On("Check", "pw1", "hashed-pw1").Return(true)

	user, err := service.ValidateCredentials(ctx, "alice", "pw1")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.HashedPassword)
	// The stored entity keeps its hash; only the returned copy is stripped.
	assert.Equal(t, "hashed-pw1", stored.HashedPassword)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()
	stored := &entity.User{ID: 1, Username: "alice", HashedPassword: "hashed-pw1"}

	repo.On("FindByUsername", ctx, "alice").Return(stored, nil)
	tokens.On("IssueAccessToken", uint64(1)).Return("new-access", nil)
	tokens.On("IssueRefreshToken").Return("new-refresh", nil)
	repo.On("UpdateTokens", ctx, uint64(1), "new-access", "new-refresh").Return(nil)

	output, err := service.Login(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, &usecase.SessionOutput{
		ID:          1,
		Username:    "alice",
		AccessToken: "new-access",
	}, output)
	repo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestAuthService_Login_ValidatedUserMissing(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()
	repo.On("FindByUsername", ctx, "alice").Return(nil, repository.ErrUserNotFound)

	output, err := service.Login(ctx, "alice")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
	assert.Nil(t, output)
}

func TestAuthService_Refresh_Success_KeepsRefreshToken(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()
	stored := &entity.User{ID: 1, Username: "alice", AccessToken: "old-access", RefreshToken: "stored-refresh"}

	repo.On("FindByIDAndAccessToken", ctx, uint64(1), "old-access").Return(stored, nil)
	tokens.On("IsTokenAlive", "stored-refresh").Return(nil, true)
	tokens.On("IssueAccessToken", uint64(1)).Return("new-access", nil)
	// The refresh token must be persisted unrotated alongside the new access token.
	repo.On("UpdateTokens", ctx, uint64(1), "new-access", "stored-refresh").Return(nil)

	output, err := service.Refresh(ctx, 1, "old-access")

	require.NoError(t, err)
	assert.Equal(t, uint64(1), output.ID)
	assert.Equal(t, "alice", output.Username)
	assert.Equal(t, "new-access", output.AccessToken)
	repo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestAuthService_Refresh_NoMatchingPair(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()
	repo.On("FindByIDAndAccessToken", ctx, uint64(1), "forged-token").Return(nil, repository.ErrUserNotFound)

	output, err := service.Refresh(ctx, 1, "forged-token")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	assert.Nil(t, output)
	tokens.AssertNotCalled(t, "IssueAccessToken", mock.Anything)
}

func TestAuthService_Refresh_DeadRefreshToken(t *testing.T) {
	repo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokens := &mockTokenService{}
	service := newTestAuthService(repo, hasher, tokens)

	ctx := context.Background()
	stored := &entity.User{ID: 1, Username: "alice", AccessToken: "old-access", RefreshToken: "expired-refresh"}

	repo.On("FindByIDAndAccessToken", ctx, uint64(1), "old-access").Return(stored, nil)
	tokens.On("IsTokenAlive", "expired-refresh").Return(nil, false)

	output, err := service.Refresh(ctx, 1, "old-access")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	assert.Nil(t, output)
	repo.AssertNotCalled(t, "UpdateTokens", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
