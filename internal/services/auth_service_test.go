package services

import (
	"context"
	"testing"
	"time"

	"answerhub/internal/config"
	"answerhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *fakeSessionRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	cfg := &config.AuthConfig{
		SessionName:   "session_token",
		SessionExpiry: time.Hour,
		BCryptCost:    bcrypt.MinCost,
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
	}
	svc := NewAuthService(userRepo, sessionRepo, cfg, zap.NewNop())
	return svc, userRepo, sessionRepo
}

func TestRegister_CreatesUserAndSession(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)

	result, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "gopher",
		Email:    "Gopher@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotZero(t, result.User.ID)
	assert.Equal(t, "gopher@example.com", result.User.Email)
	assert.Equal(t, 1, result.User.Reputation)
	assert.Equal(t, models.TierBeginner, result.User.BadgeTier)
	assert.Empty(t, result.User.PasswordHash)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.SessionToken)

	stored, err := userRepo.GetByEmail(context.Background(), "gopher@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	req := &RegisterRequest{Username: "gopher", Email: "gopher@example.com", Password: "correct-horse"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Username: "othername",
		Email:    "gopher@example.com",
		Password: "correct-horse",
	})
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "gopher",
		Email:    "gopher@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "gopher@example.com",
		Password: "wrong-horse",
	})
	require.Error(t, err)
	svcErr := GetServiceError(err)
	assert.Equal(t, ErrorTypeUnauthorized, svcErr.Type)
}

func TestLogin_UnknownEmailSameErrorAsWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	require.Error(t, err)
	assert.Equal(t, ErrorTypeUnauthorized, GetServiceError(err).Type)
}

func TestUserFromSession_RoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "gopher",
		Email:    "gopher@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	user, err := svc.UserFromSession(context.Background(), result.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)
}

func TestUserFromSession_ExpiredSessionRejectedAndDeleted(t *testing.T) {
	svc, _, sessionRepo := newAuthFixture(t)

	result, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "gopher",
		Email:    "gopher@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	sessionRepo.sessions[result.SessionToken].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = svc.UserFromSession(context.Background(), result.SessionToken)
	require.Error(t, err)
	assert.Equal(t, ErrorTypeUnauthorized, GetServiceError(err).Type)

	stored, err := sessionRepo.GetByToken(context.Background(), result.SessionToken)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestUserFromJWT_RoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "gopher",
		Email:    "gopher@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	user, err := svc.UserFromJWT(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)

	_, err = svc.UserFromJWT(context.Background(), result.Token+"tampered")
	require.Error(t, err)
}

func TestLogout_UnknownTokenIsNoError(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	assert.NoError(t, svc.Logout(context.Background(), "does-not-exist"))
}
