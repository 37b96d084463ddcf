package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moji-backend/pkg/auth"
	apperrors "moji-backend/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	tokens, err := auth.NewService(auth.Config{
		SecretKey: "test-secret",
		Issuer:    "moji-backend-test",
		Expiry:    time.Hour,
	})
	require.NoError(t, err)
	users := newFakeUserRepo()
	return NewAuthService(users, tokens, zap.NewNop()), users
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username: "moonwriter",
		Email:    "moon@example.com",
		Password: "secret123",
	}
}

func TestRegister_IssuesToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	result, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "moonwriter", result.User.Username)
	assert.NotEqual(t, "secret123", result.User.PasswordHash)
}

func TestRegister_NicknameDefaultsToUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)

	result, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.Equal(t, "moonwriter", result.User.Nickname)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Email = "other@example.com"
	_, err = svc.Register(ctx, in)
	assert.True(t, apperrors.IsConflict(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Username = "otherwriter"
	_, err = svc.Register(ctx, in)
	assert.True(t, apperrors.IsConflict(err))
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		tweak func(*RegisterInput)
	}{
		{"short username", func(in *RegisterInput) { in.Username = "ab" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registerInput()
			tc.tweak(&in)
			_, err := svc.Register(ctx, in)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	result, err := svc.Login(ctx, LoginInput{Username: "moonwriter", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Username: "moonwriter", Password: "wrong"})
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestLogin_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "whatever"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid username or password")
}

func TestProfile(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	u, err := svc.Profile(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "moon@example.com", u.Email)

	_, err = svc.Profile(ctx, 999)
	assert.True(t, apperrors.IsNotFound(err))
}
