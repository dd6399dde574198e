package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/config"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

func newAuthFixture(users *fakeUserRepo) *AuthService {
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:                 "test-secret",
		LoginTokenTTLDays:         7,
		VerificationTokenTTLHours: 24,
		BcryptCost:                4,
	}, users, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func verifiedUser(t *testing.T, id, password string) *fakeUserRepo {
	t.Helper()
	user := activeParticipant(id)
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	user.PasswordHash = hash
	return newFakeUserRepo(user)
}

func TestLogin(t *testing.T) {
	repo := verifiedUser(t, "user-1", "s3cret-pass")
	svc := newAuthFixture(repo)

	user, token, expiresAt, err := svc.Login(context.Background(), "user-1@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(testNow))

	claims, err := svc.TokenManager().ParseLoginToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(repo *fakeUserRepo)
		email       string
		password    string
		wantMessage string
	}{
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			password:    "s3cret-pass",
			wantMessage: "invalid email or password",
		},
		{
			name:        "wrong password",
			email:       "user-1@example.com",
			password:    "wrong",
			wantMessage: "invalid email or password",
		},
		{
			name: "deleted account",
			mutate: func(repo *fakeUserRepo) {
				_ = repo.users["user-1"].SoftDelete("user", testNow)
			},
			email:       "user-1@example.com",
			password:    "s3cret-pass",
			wantMessage: "user account is deleted",
		},
		{
			name: "unverified email",
			mutate: func(repo *fakeUserRepo) {
				repo.users["user-1"].EmailVerified = false
			},
			email:       "user-1@example.com",
			password:    "s3cret-pass",
			wantMessage: "email not verified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := verifiedUser(t, "user-1", "s3cret-pass")
			if tt.mutate != nil {
				tt.mutate(repo)
			}
			svc := newAuthFixture(repo)

			_, token, _, err := svc.Login(context.Background(), tt.email, tt.password)
			assert.Empty(t, token)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
			assert.Equal(t, tt.wantMessage, domainErr.Message)
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	user := activeParticipant("user-1")
	user.EmailVerified = false
	repo := newFakeUserRepo(user)
	svc := newAuthFixture(repo)

	token, err := svc.TokenManager().GenerateVerificationToken(user.ID, user.Email)
	require.NoError(t, err)

	verified, err := svc.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.Equal(t, testNow, verified.UpdatedAt)
	assert.True(t, repo.users["user-1"].EmailVerified)
}

func TestVerifyEmailRejectsBadTokens(t *testing.T) {
	user := activeParticipant("user-1")
	user.EmailVerified = false
	svc := newAuthFixture(newFakeUserRepo(user))

	// A login token is not a verification token.
	loginToken, _, err := svc.TokenManager().GenerateLoginToken(user)
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", loginToken} {
		_, err := svc.VerifyEmail(context.Background(), token)
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIAL", apperrors.ToDomainError(err).Code)
	}
}

func TestVerifyEmailUnknownSubject(t *testing.T) {
	svc := newAuthFixture(newFakeUserRepo())
	token, err := svc.TokenManager().GenerateVerificationToken("ghost", "ghost@example.com")
	require.NoError(t, err)

	_, err = svc.VerifyEmail(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIAL", apperrors.ToDomainError(err).Code)
}

func TestVerifyEmailIsIdempotentOnTheFlag(t *testing.T) {
	// Without Redis the replay guard is off, but re-verifying an already
	// verified account still succeeds without flipping anything back.
	user := activeParticipant("user-1")
	svc := newAuthFixture(newFakeUserRepo(user))

	token, err := svc.TokenManager().GenerateVerificationToken(user.ID, user.Email)
	require.NoError(t, err)

	verified, err := svc.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
}
