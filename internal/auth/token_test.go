package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-registration/internal/domain"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func testUser() *domain.User {
	return &domain.User{
		ID:    "9f1c7f9a-4a4d-4a79-9a34-2f8a4dd6d0b1",
		Email: "ada@example.com",
		Role:  domain.RoleOrganizer,
	}
}

func TestLoginTokenRoundTrip(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", 7, 24).WithClock(fixedClock(issued))

	user := testUser()
	token, expiresAt, err := tm.GenerateLoginToken(user)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour), expiresAt)

	claims, err := tm.ParseLoginToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleOrganizer, claims.Role)
}

func TestParseLoginTokenFailures(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", 7, 24).WithClock(fixedClock(issued))
	token, _, err := tm.GenerateLoginToken(testUser())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		tm    *TokenManager
	}{
		{"empty token", "", tm},
		{"garbage token", "not.a.jwt", tm},
		{"tampered token", token + "x", tm},
		{"wrong secret", token, NewTokenManager("other-secret", 7, 24).WithClock(fixedClock(issued))},
		{"expired token", token, NewTokenManager("secret", 7, 24).WithClock(fixedClock(issued.Add(8 * 24 * time.Hour)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.tm.ParseLoginToken(tt.token)
			assert.Nil(t, claims)
			requireInvalidCredential(t, err)
		})
	}
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", 7, 24).WithClock(fixedClock(issued))

	token, err := tm.GenerateVerificationToken("user-1", "ada@example.com")
	require.NoError(t, err)

	claims, err := tm.ParseVerificationToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "email-verification", claims.Purpose)
	assert.NotEmpty(t, claims.ID, "verification tokens must carry a jti")
}

func TestVerificationTokensCarryUniqueIDs(t *testing.T) {
	tm := NewTokenManager("secret", 7, 24)

	first, err := tm.GenerateVerificationToken("user-1", "ada@example.com")
	require.NoError(t, err)
	second, err := tm.GenerateVerificationToken("user-1", "ada@example.com")
	require.NoError(t, err)

	a, err := tm.ParseVerificationToken(first)
	require.NoError(t, err)
	b, err := tm.ParseVerificationToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", 7, 24).WithClock(fixedClock(issued))

	loginToken, _, err := tm.GenerateLoginToken(testUser())
	require.NoError(t, err)

	// A login token lacks the verification purpose claim.
	claims, err := tm.ParseVerificationToken(loginToken)
	assert.Nil(t, claims)
	requireInvalidCredential(t, err)
}

func TestVerificationTokenExpiry(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", 7, 24).WithClock(fixedClock(issued))
	token, err := tm.GenerateVerificationToken("user-1", "ada@example.com")
	require.NoError(t, err)

	late := NewTokenManager("secret", 7, 24).WithClock(fixedClock(issued.Add(25 * time.Hour)))
	claims, err := late.ParseVerificationToken(token)
	assert.Nil(t, claims)
	requireInvalidCredential(t, err)
}

func TestTokenManagerTTLDefaults(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", 0, -5).WithClock(fixedClock(issued))

	_, expiresAt, err := tm.GenerateLoginToken(testUser())
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour), expiresAt)
}
