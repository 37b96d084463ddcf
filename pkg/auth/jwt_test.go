package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, expiry time.Duration) *Service {
	t.Helper()
	svc, err := NewService(Config{
		SecretKey: "test-secret-key",
		Issuer:    "moji-backend-test",
		Expiry:    expiry,
	})
	require.NoError(t, err)
	return svc
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(Config{})
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.GenerateToken(42, "diarist")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "diarist", claims.Username)
	assert.Equal(t, "moji-backend-test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t, time.Nanosecond)

	token, err := svc.GenerateToken(1, "u")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestService(t, time.Hour)
	token, err := issuer.GenerateToken(1, "u")
	require.NoError(t, err)

	other, err := NewService(Config{SecretKey: "different-secret", Issuer: "moji-backend-test"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateToken_Empty(t *testing.T) {
	svc := newTestService(t, time.Hour)
	_, err := svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(t, time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestUserContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, err := GetUserFromContext(ctx)
	assert.Error(t, err)

	ctx = SetUserInContext(ctx, &UserContext{UserID: 7, Username: "u"})
	user, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, "u", user.Username)
}
