package repository

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token := encodeCursor(createdAt, "row-42")
	assert.NotEmpty(t, token)

	payload, err := decodeCursor(token)
	require.NoError(t, err)
	assert.True(t, payload.CreatedAt.Equal(createdAt))
	assert.Equal(t, "row-42", payload.ID)
}

func TestDecodeCursorRejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"base64 but not json", base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{"json missing id", base64.RawURLEncoding.EncodeToString([]byte(`{"created_at":"2026-03-01T12:00:00Z"}`))},
		{"json missing created_at", base64.RawURLEncoding.EncodeToString([]byte(`{"id":"row-1"}`))},
		{"empty object", base64.RawURLEncoding.EncodeToString([]byte(`{}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := decodeCursor(tt.token)
			assert.Nil(t, payload)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "INVALID_CURSOR", domainErr.Code)
			assert.Equal(t, 400, domainErr.HTTPStatus)
		})
	}
}

func TestCursorTokenIsOpaque(t *testing.T) {
	// Tokens use the unpadded URL-safe alphabet so they travel in query
	// strings without escaping.
	token := encodeCursor(time.Now().UTC(), "row-1")
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
}
