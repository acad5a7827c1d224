package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gatekeeper/internal/delivery/http/validator"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*usecase.SignupOutput), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthUsecase) ValidateCredentials(ctx context.Context, username, password string) (*entity.User, error) {
	args := m.Called(ctx, username, password)
	if user := args.Get(0); user != nil {
		return user.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, username string) (*usecase.SessionOutput, error) {
	args := m.Called(ctx, username)
	if out := args.Get(0); out != nil {
		return out.(*usecase.SessionOutput), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, id uint64, accessToken string) (*usecase.SessionOutput, error) {
	args := m.Called(ctx, id, accessToken)
	if out := args.Get(0); out != nil {
		return out.(*usecase.SessionOutput), args.Error(1)
	}

	return nil, args.Error(1)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, r io.Reader) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&payload))

	return payload
}

func TestAuthHandler_Login_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	uc := new(mockAuthUsecase)
	h := NewAuthHandler(uc, slog.New(slog.DiscardHandler))

	// Both failure modes surface from the usecase as (nil, nil).
	uc.On("ValidateCredentials", mock.Anything, "ghost", "whatever").Return(nil, nil)
	uc.On("ValidateCredentials", mock.Anything, "alice", "wrongpass").Return(nil, nil)

	bodies := []string{
		`{"username":"ghost","password":"whatever"}`,
		`{"username":"alice","password":"wrongpass"}`,
	}

	responses := make([]string, 0, len(bodies))
	for _, body := range bodies {
		c, rec := newTestContext(t, http.MethodPost, "/auth/login", body)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		responses = append(responses, rec.Body.String())
	}

	// The two rejections must be byte-identical so account existence
	// cannot be probed through the login endpoint.
	assert.Equal(t, responses[0], responses[1])
	uc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	uc := new(mockAuthUsecase)
	h := NewAuthHandler(uc, slog.New(slog.DiscardHandler))

	uc.On("ValidateCredentials", mock.Anything, "alice", "s3cret-pass").
		Return(&entity.User{ID: 7, Username: "alice"}, nil)
	uc.On("Login", mock.Anything, "alice").
		Return(&usecase.SessionOutput{ID: 7, Username: "alice", AccessToken: "signed.jwt.here"}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"alice","password":"s3cret-pass"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec.Body)
	assert.Equal(t, true, payload["success"])

	data, ok := payload["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "signed.jwt.here", data["access_token"])
	assert.NotContains(t, data, "refresh_token")
	uc.AssertExpectations(t)
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	uc := new(mockAuthUsecase)
	h := NewAuthHandler(uc, slog.New(slog.DiscardHandler))

	uc.On("Signup", mock.Anything, &usecase.SignupInput{
		Username: "newuser",
		Password: "longenoughpass",
		Email:    "new@example.com",
	}).Return(&usecase.SignupOutput{ID: 42}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"username":"newuser","password":"longenoughpass","email":"new@example.com"}`)
	require.NoError(t, h.Signup(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	payload := decodeBody(t, rec.Body)
	data, ok := payload["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["id"])
	uc.AssertExpectations(t)
}

func TestAuthHandler_Signup_RejectsShortPassword(t *testing.T) {
	uc := new(mockAuthUsecase)
	h := NewAuthHandler(uc, slog.New(slog.DiscardHandler))

	c, _ := newTestContext(t, http.MethodPost, "/auth/signup", `{"username":"newuser","password":"short"}`)
	err := h.Signup(c)

	require.Error(t, err)
	uc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestAuthHandler_Refresh_PassesThroughUsecase(t *testing.T) {
	uc := new(mockAuthUsecase)
	h := NewAuthHandler(uc, slog.New(slog.DiscardHandler))

	uc.On("Refresh", mock.Anything, uint64(7), "current.jwt").
		Return(&usecase.SessionOutput{ID: 7, Username: "alice", AccessToken: "fresh.jwt"}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh", `{"id":7,"access_token":"current.jwt"}`)
	require.NoError(t, h.Refresh(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec.Body)
	data, ok := payload["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fresh.jwt", data["access_token"])
	uc.AssertExpectations(t)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
