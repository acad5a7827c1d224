// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a new account after verifying the username is free.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("username", input.Username))

	_, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err == nil {
		srv.log(ctx).Warn("Signup rejected, username taken", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrUsernameTaken, "signup failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check username availability")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	newUser := &entity.User{
		Username:       input.Username,
		Name:           input.Name,
		Email:          input.Email,
		ProfileURL:     input.ProfileURL,
		HashedPassword: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create user during signup")
	}

	srv.log(ctx).Debug("Signup completed", slog.Uint64("userID", newUser.ID))

	return &usecase.SignupOutput{ID: newUser.ID}, nil
}

// ValidateCredentials checks a username/password pair. Absent user and wrong
// password are deliberately indistinguishable: both return (nil, nil) so the
// delivery layer can only ever emit one uniform unauthorized signal.
func (srv *authService) ValidateCredentials(ctx context.Context, username, password string) (*entity.User, error) {
	srv.log(ctx).Debug("Validating credentials", slog.String("username", username))

	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find user for credential validation")
	}

	// bcrypt compare is CPU-bound, no store access past this point.
	if !srv.hasher.Check(password, user.HashedPassword) {
		srv.log(ctx).Warn("Credential validation failed", slog.String("username", username))

		return nil, nil
	}

	return user.WithoutPassword(), nil
}

// Login mints and persists a fresh token pair for an already-validated user.
// It does not re-check the password; that is ValidateCredentials' job.
func (srv *authService) Login(ctx context.Context, username string) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", username))

	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		// The caller validated this username moments ago; absence here
		// breaks the precondition and is an internal fault, not a 401.
		srv.log(ctx).Error("Login failed, validated user missing", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "validated user no longer present")
	}

	accessToken, err := srv.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	// Overwrites the previous pair unconditionally; concurrent logins race
	// with last-writer-wins semantics and that is accepted.
	if err := srv.userRepo.UpdateTokens(ctx, user.ID, accessToken, refreshToken); err != nil {
		srv.log(ctx).Error("Failed to persist token pair during login", slog.Uint64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist tokens during login")
	}

	srv.log(ctx).Debug("User logged in", slog.Uint64("userID", user.ID))

	// The refresh token stays server-side only.
	return &usecase.SessionOutput{
		ID:          user.ID,
		Username:    user.Username,
		AccessToken: accessToken,
	}, nil
}

// Refresh exchanges a current access token for a new one.
func (srv *authService) Refresh(ctx context.Context, id uint64, accessToken string) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Attempting token refresh", slog.Uint64("userID", id))

	// One composite lookup: fetching the user and checking that the
	// presented access token is still the current one must not be two steps.
	user, err := srv.userRepo.FindByIDAndAccessToken(ctx, id, accessToken)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Refresh rejected, no matching id/token pair", slog.Uint64("userID", id))

			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "refresh failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id and access token")
	}

	if _, alive := srv.tokenService.IsTokenAlive(user.RefreshToken); !alive {
		srv.log(ctx).Warn("Refresh rejected, stored refresh token not alive", slog.Uint64("userID", id))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "refresh token expired")
	}

	newAccessToken, err := srv.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue new access token")
	}

	// The refresh token is intentionally not rotated here.
	// TODO: blacklist the superseded access token in a fast revocation
	// store; it may still be unexpired when replaced.
	if err := srv.userRepo.UpdateTokens(ctx, user.ID, newAccessToken, user.RefreshToken); err != nil {
		srv.log(ctx).Error("Failed to persist refreshed access token", slog.Uint64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist tokens during refresh")
	}

	srv.log(ctx).Debug("Access token refreshed", slog.Uint64("userID", user.ID))

	return &usecase.SessionOutput{
		ID:          user.ID,
		Username:    user.Username,
		AccessToken: newAccessToken,
	}, nil
}
