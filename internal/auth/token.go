package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/event-registration/internal/domain"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

const (
	tokenAudience       = "users"
	purposeVerification = "email-verification"
)

// TokenManager issues and validates the two credential kinds: login tokens
// and single-purpose email-verification tokens. Validation is a pure
// function of (token, secret, clock); the clock is injectable for tests.
type TokenManager struct {
	secret    []byte
	loginTTL  time.Duration
	verifyTTL time.Duration
	now       func() time.Time
}

// NewTokenManager builds a manager. TTL arguments fall back to the
// 7-day/24-hour defaults when non-positive.
func NewTokenManager(secret string, loginTTLDays, verifyTTLHours int) *TokenManager {
	if loginTTLDays <= 0 {
		loginTTLDays = 7
	}
	if verifyTTLHours <= 0 {
		verifyTTLHours = 24
	}
	return &TokenManager{
		secret:    []byte(secret),
		loginTTL:  time.Duration(loginTTLDays) * 24 * time.Hour,
		verifyTTL: time.Duration(verifyTTLHours) * time.Hour,
		now:       time.Now,
	}
}

// WithClock overrides the time source.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// LoginClaims is the identity claim embedded in login tokens.
type LoginClaims struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// VerificationClaims is the payload of the single-purpose verification
// token. The jti makes each token individually redeemable exactly once.
type VerificationClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateLoginToken signs a 7-day identity credential for the user.
func (tm *TokenManager) GenerateLoginToken(user *domain.User) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tm.loginTTL)
	claims := &LoginClaims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseLoginToken validates signature, expiry and audience. Missing,
// malformed, expired and tampered tokens all yield the same error kind.
func (tm *TokenManager) ParseLoginToken(tokenStr string) (*LoginClaims, error) {
	if tokenStr == "" {
		return nil, apperrors.NewInvalidCredential()
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &LoginClaims{}, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, apperrors.NewInvalidCredential()
	}
	claims, ok := parsed.Claims.(*LoginClaims)
	if !ok || !parsed.Valid {
		return nil, apperrors.NewInvalidCredential()
	}
	return claims, nil
}

// GenerateVerificationToken signs a single-purpose email-verification token.
func (tm *TokenManager) GenerateVerificationToken(userID, email string) (string, error) {
	now := tm.now()
	claims := &VerificationClaims{
		Email:   email,
		Purpose: purposeVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.verifyTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// ParseVerificationToken validates a verification token, including that it
// was issued for email verification and nothing else.
func (tm *TokenManager) ParseVerificationToken(tokenStr string) (*VerificationClaims, error) {
	if tokenStr == "" {
		return nil, apperrors.NewInvalidCredential()
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &VerificationClaims{}, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, apperrors.NewInvalidCredential()
	}
	claims, ok := parsed.Claims.(*VerificationClaims)
	if !ok || !parsed.Valid || claims.Purpose != purposeVerification {
		return nil, apperrors.NewInvalidCredential()
	}
	return claims, nil
}

func (tm *TokenManager) keyFunc(_ *jwt.Token) (interface{}, error) {
	return tm.secret, nil
}
